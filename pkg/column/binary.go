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

// BytesColumn is a column of raw byte-slice values, optionally nullable.
type BytesColumn struct {
	Meta
	Optional bool
	Values   [][]byte
	Validity bitmap.Bitmap
}

func NewBytes(name string) *BytesColumn {
	return &BytesColumn{Meta: Meta{Name: name}}
}

func NewOptionalBytes(name string) *BytesColumn {
	return &BytesColumn{Meta: Meta{Name: name}, Optional: true}
}

func (c *BytesColumn) Len() int { return len(c.Values) }

func (c *BytesColumn) Append(v []byte) {
	c.Values = append(c.Values, v)
}

func (c *BytesColumn) AppendOptional(v []byte, present bool) {
	if present {
		c.Values = append(c.Values, v)
	} else {
		c.Values = append(c.Values, nil)
	}
	c.Validity = bitmap.Grow(c.Validity, len(c.Values))
	if present {
		c.Validity.Set(len(c.Values) - 1)
	}
}

func (c *BytesColumn) IsValid(i int) bool {
	return c.Validity.IsSet(i)
}

func (c *BytesColumn) Reset() {
	c.Values = c.Values[:0]
	c.Validity.Reset()
}
