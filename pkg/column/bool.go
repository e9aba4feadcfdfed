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

// BoolColumn is a column of bool values, optionally nullable.
type BoolColumn struct {
	Meta
	Optional bool
	Values   []bool
	Validity bitmap.Bitmap
}

func NewBool(name string) *BoolColumn {
	return &BoolColumn{Meta: Meta{Name: name}}
}

func NewOptionalBool(name string) *BoolColumn {
	return &BoolColumn{Meta: Meta{Name: name}, Optional: true}
}

func (c *BoolColumn) Len() int { return len(c.Values) }

func (c *BoolColumn) Append(v bool) {
	c.Values = append(c.Values, v)
}

func (c *BoolColumn) AppendOptional(v bool, present bool) {
	if present {
		c.Values = append(c.Values, v)
	} else {
		c.Values = append(c.Values, false)
	}
	c.Validity = bitmap.Grow(c.Validity, len(c.Values))
	if present {
		c.Validity.Set(len(c.Values) - 1)
	}
}

func (c *BoolColumn) IsValid(i int) bool {
	return c.Validity.IsSet(i)
}

func (c *BoolColumn) Reset() {
	c.Values = c.Values[:0]
	c.Validity.Reset()
}
