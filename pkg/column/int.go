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

// I64Column is a column of int64 values, optionally nullable.
type I64Column struct {
	Meta
	Optional bool
	Values   []int64
	Validity bitmap.Bitmap
}

// NewI64 creates a non-nullable int64 column.
func NewI64(name string) *I64Column {
	return &I64Column{Meta: Meta{Name: name}}
}

// NewOptionalI64 creates a nullable int64 column.
func NewOptionalI64(name string) *I64Column {
	return &I64Column{Meta: Meta{Name: name}, Optional: true}
}

func (c *I64Column) Len() int { return len(c.Values) }

// Append pushes a value onto a non-nullable column.
func (c *I64Column) Append(v int64) {
	c.Values = append(c.Values, v)
}

// AppendOptional pushes a placeholder (0) when present is false, otherwise
// appends v and marks the slot valid. Must only be called on optional
// columns.
func (c *I64Column) AppendOptional(v int64, present bool) {
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

// IsValid reports whether slot i holds a present value.
func (c *I64Column) IsValid(i int) bool {
	return c.Validity.IsSet(i)
}

// Reset truncates the value vector and clears the bitmap in place,
// preserving the backing arrays' capacity across a batch reset.
func (c *I64Column) Reset() {
	c.Values = c.Values[:0]
	c.Validity.Reset()
}

// I64SummaryColumn stores a pre-aggregated quantile summary per row (count,
// sum, and the quantile series), grounded on the teacher's
// otel/metrics/arrow/summary_dp.go and quantile_value.go.
type I64SummaryColumn struct {
	Meta
	Optional  bool
	Count     []uint64
	Sum       []int64
	Quantiles [][]QuantileValue
	Validity  bitmap.Bitmap
}

// QuantileValue is one (quantile, value) pair of a summary column.
type QuantileValue struct {
	Quantile float64
	Value    float64
}

func NewI64Summary(name string) *I64SummaryColumn {
	return &I64SummaryColumn{Meta: Meta{Name: name, LogicalType: MetricSummary}}
}

func (c *I64SummaryColumn) Len() int { return len(c.Count) }

func (c *I64SummaryColumn) Append(count uint64, sum int64, quantiles []QuantileValue) {
	c.Count = append(c.Count, count)
	c.Sum = append(c.Sum, sum)
	c.Quantiles = append(c.Quantiles, quantiles)
}

func (c *I64SummaryColumn) Reset() {
	c.Count = c.Count[:0]
	c.Sum = c.Sum[:0]
	c.Quantiles = c.Quantiles[:0]
	c.Validity.Reset()
}
