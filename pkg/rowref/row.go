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

// Package rowref is a row-oriented reference implementation of spec.md's
// batch engine, used only by the benchmark harness to check the columnar
// implementations' output for logical equivalence — never for its own
// performance. It plays the same role in this repo that pkg/rbb's
// field-at-a-time Record played for the teacher before its columnar
// RecordBatchBuilder replaced it: a plain, obviously-correct baseline.
package rowref

import "sort"

// Field is one named value of a Row, mirroring rbb's value.Field: a scalar,
// or a []Row for an auxiliary entity's child rows.
type Field struct {
	Name  string
	Value interface{}
}

// Row is one logical event, stored as an ordered list of fields rather than
// columns. Two rows built from the same event compare equal regardless of
// field insertion order once Normalize has been called on both.
type Row struct {
	Fields []Field
}

func (r *Row) Set(name string, value interface{}) {
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
}

// Normalize sorts fields by name, the row-oriented analogue of column name
// lookup being order-independent in the columnar batch.
func (r *Row) Normalize() {
	sort.Slice(r.Fields, func(i, j int) bool { return r.Fields[i].Name < r.Fields[j].Name })
	for _, f := range r.Fields {
		if children, ok := f.Value.([]Row); ok {
			for i := range children {
				children[i].Normalize()
			}
		}
	}
}

// ToMap projects the row to the same shape batch.ToJSONValue produces, so a
// columnar batch and a rowref batch built from identical events can be
// compared field by field.
func (r Row) ToMap() map[string]interface{} {
	obj := make(map[string]interface{}, len(r.Fields))
	for _, f := range r.Fields {
		if children, ok := f.Value.([]Row); ok {
			if len(children) == 0 {
				continue
			}
			rows := make([]map[string]interface{}, len(children))
			for i, c := range children {
				rows[i] = c.ToMap()
			}
			obj[f.Name] = rows
			continue
		}
		obj[f.Name] = f.Value
	}
	return obj
}
