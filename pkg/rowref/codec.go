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

import "github.com/vmihailenco/msgpack/v5"

// wireRow is the msgpack wire shape: a plain map keeps the codec agnostic
// to field order, matching the column-name-keyed lookup the other two
// encodings use.
type wireRow map[string]interface{}

// Encode serializes every row to a msgpack array-of-maps payload. Unlike
// the tag/value and Arrow encodings this carries no schema: field names
// travel with every row, the price of never declaring a binding up front.
func Encode(b *Batch) ([]byte, error) {
	wire := make([]wireRow, len(b.Rows))
	for i, r := range b.Rows {
		wire[i] = r.ToMap()
	}
	return msgpack.Marshal(wire)
}

// Decode reconstructs a Batch from Encode's output. Row field order is not
// preserved — callers that need deterministic comparison should call
// Row.Normalize or compare via ToMap.
func Decode(data []byte) (*Batch, error) {
	var wire []wireRow
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return nil, err
	}

	b := &Batch{MaxSize: len(wire)}
	for _, w := range wire {
		b.Rows = append(b.Rows, rowFromWire(w))
	}
	return b, nil
}

func rowFromWire(w wireRow) Row {
	var r Row
	for name, v := range w {
		if children, ok := v.([]interface{}); ok {
			rows := make([]Row, 0, len(children))
			for _, c := range children {
				if cm, ok := c.(map[string]interface{}); ok {
					rows = append(rows, rowFromWire(cm))
				}
			}
			r.Set(name, rows)
			continue
		}
		r.Set(name, v)
	}
	return r
}
