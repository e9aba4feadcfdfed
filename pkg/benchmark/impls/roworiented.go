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

package impls

import (
	"io"

	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
	"github.com/columnar-telemetry/batchengine/pkg/rowref"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// RowOrientedSystem profiles pkg/rowref: the reference row-oriented stand-in
// for Batch, carrying the same record/reset/capacity protocol without any
// columnar layout, serialized as one msgpack-encoded object per row.
type RowOrientedSystem struct {
	source      EventSource
	desc        schema.BindingDescriptor
	compression benchmark.CompressionAlgorithm

	current *rowref.Batch
	decoded *rowref.Batch
}

func NewRowOrientedSystem(source EventSource, compression benchmark.CompressionAlgorithm) *RowOrientedSystem {
	return &RowOrientedSystem{
		source:      source,
		desc:        source.Descriptor(),
		compression: compression,
	}
}

func (s *RowOrientedSystem) Name() string { return "ROW_ORIENTED" }

func (s *RowOrientedSystem) Tags() []string {
	tags := []string{s.source.Name()}
	if c := s.compression.String(); c != "" {
		tags = append(tags, c)
	}
	return tags
}

func (s *RowOrientedSystem) DatasetSize() int { return s.source.Len() }

func (s *RowOrientedSystem) CompressionAlgorithm() benchmark.CompressionAlgorithm {
	return s.compression
}

func (s *RowOrientedSystem) StartProfiling(_ io.Writer) {}
func (s *RowOrientedSystem) EndProfiling(_ io.Writer)   {}

func (s *RowOrientedSystem) InitBatchSize(_ io.Writer, batchSize int) {
	s.current = rowref.New(batchSize)
}

func (s *RowOrientedSystem) CreateBatch(_ io.Writer, startAt, size int) {
	if err := s.source.WriteRow(s.current, startAt, size); err != nil {
		panic(err)
	}
}

func (s *RowOrientedSystem) Process(_ io.Writer) string {
	return digestRows(rowref.ToJSONValue(s.current, s.desc.URN))
}

func (s *RowOrientedSystem) Serialize(_ io.Writer) ([]byte, error) {
	return rowref.Encode(s.current)
}

func (s *RowOrientedSystem) Deserialize(_ io.Writer, buffer []byte) {
	b, err := rowref.Decode(buffer)
	if err != nil {
		panic(err)
	}
	s.decoded = b
}

func (s *RowOrientedSystem) Clear() {
	s.current.Reset()
	s.decoded = nil
}

func (s *RowOrientedSystem) ShowStats() {}
