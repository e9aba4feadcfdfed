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

// StringColumn is a column of string values, optionally nullable. An empty
// string is a distinct present value from an absent one; only the validity
// bitmap distinguishes them on optional columns.
type StringColumn struct {
	Meta
	Optional bool
	Values   []string
	Validity bitmap.Bitmap
}

func NewString(name string) *StringColumn {
	return &StringColumn{Meta: Meta{Name: name}}
}

func NewOptionalString(name string) *StringColumn {
	return &StringColumn{Meta: Meta{Name: name}, Optional: true}
}

func (c *StringColumn) Len() int { return len(c.Values) }

func (c *StringColumn) Append(v string) {
	c.Values = append(c.Values, v)
}

func (c *StringColumn) AppendOptional(v string, present bool) {
	if present {
		c.Values = append(c.Values, v)
	} else {
		c.Values = append(c.Values, "")
	}
	c.Validity = bitmap.Grow(c.Validity, len(c.Values))
	if present {
		c.Validity.Set(len(c.Values) - 1)
	}
}

func (c *StringColumn) IsValid(i int) bool {
	return c.Validity.IsSet(i)
}

func (c *StringColumn) Reset() {
	c.Values = c.Values[:0]
	c.Validity.Reset()
}
