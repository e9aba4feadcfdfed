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

package rowref

// Batch is a row-oriented stand-in for batch.Batch: the same
// record/reset/capacity protocol of spec.md §3, minus any columnar layout.
type Batch struct {
	MaxSize int
	Rows    []Row
}

func New(maxSize int) *Batch {
	return &Batch{MaxSize: maxSize}
}

func (b *Batch) Size() int {
	return len(b.Rows)
}

func (b *Batch) Full() bool {
	return len(b.Rows) >= b.MaxSize
}

// Reset drops every row while keeping the underlying slice's capacity, the
// row-oriented equivalent of batch.Batch.Reset.
func (b *Batch) Reset() {
	b.Rows = b.Rows[:0]
}

// ToJSONValue projects every row to the batch.ToJSONValue shape.
func ToJSONValue(b *Batch, schemaURL string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(b.Rows))
	for _, r := range b.Rows {
		obj := r.ToMap()
		obj["@schema_url"] = schemaURL
		out = append(out, obj)
	}
	return out
}
