// Copyright The OpenTelemetry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package column

import "github.com/columnar-telemetry/batchengine/pkg/bitmap"

// F64Column is a column of float64 values, optionally nullable.
type F64Column struct {
	Meta
	Optional bool
	Values   []float64
	Validity bitmap.Bitmap
}

func NewF64(name string) *F64Column {
	return &F64Column{Meta: Meta{Name: name}}
}

func NewOptionalF64(name string) *F64Column {
	return &F64Column{Meta: Meta{Name: name}, Optional: true}
}

func (c *F64Column) Len() int { return len(c.Values) }

func (c *F64Column) Append(v float64) {
	c.Values = append(c.Values, v)
}

func (c *F64Column) AppendOptional(v float64, present bool) {
	if present {
		c.Values = append(c.Values, v)
	} else {
		c.Values = append(c.Values, 0)
	}
	c.Validity = bitmap.Grow(c.Validity, len(c.Values))
	if present {
		c.Validity.Set(len(c.Values) - 1)
	}
}

func (c *F64Column) IsValid(i int) bool {
	return c.Validity.IsSet(i)
}

func (c *F64Column) Reset() {
	c.Values = c.Values[:0]
	c.Validity.Reset()
}

// F64SummaryColumn is the float64 counterpart of I64SummaryColumn.
type F64SummaryColumn struct {
	Meta
	Optional  bool
	Count     []uint64
	Sum       []float64
	Quantiles [][]QuantileValue
	Validity  bitmap.Bitmap
}

func NewF64Summary(name string) *F64SummaryColumn {
	return &F64SummaryColumn{Meta: Meta{Name: name, LogicalType: MetricSummary}}
}

func (c *F64SummaryColumn) Len() int { return len(c.Count) }

func (c *F64SummaryColumn) Append(count uint64, sum float64, quantiles []QuantileValue) {
	c.Count = append(c.Count, count)
	c.Sum = append(c.Sum, sum)
	c.Quantiles = append(c.Quantiles, quantiles)
}

func (c *F64SummaryColumn) Reset() {
	c.Count = c.Count[:0]
	c.Sum = c.Sum[:0]
	c.Quantiles = c.Quantiles[:0]
	c.Validity.Reset()
}
