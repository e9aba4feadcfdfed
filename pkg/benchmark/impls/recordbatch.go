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

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/batchcfg"
	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
	"github.com/columnar-telemetry/batchengine/pkg/ipc"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// RecordBatchSystem profiles the Arrow IPC wire encoding of pkg/ipc: the
// same Batch laid out as an arrow.Record and serialized through the Arrow
// IPC stream writer, per spec.md §7.
type RecordBatchSystem struct {
	source      EventSource
	desc        schema.BindingDescriptor
	compression benchmark.CompressionAlgorithm
	cfg         *batchcfg.Config

	current *batch.Batch
	decoded *batch.Batch
}

func NewRecordBatchSystem(source EventSource, compression benchmark.CompressionAlgorithm) *RecordBatchSystem {
	return &RecordBatchSystem{
		source:      source,
		desc:        source.Descriptor(),
		compression: compression,
		cfg:         batchcfg.DefaultConfig(),
	}
}

func (s *RecordBatchSystem) Name() string { return "RECORD_BATCH" }

func (s *RecordBatchSystem) Tags() []string {
	tags := []string{s.source.Name()}
	if c := s.compression.String(); c != "" {
		tags = append(tags, c)
	}
	return tags
}

func (s *RecordBatchSystem) DatasetSize() int { return s.source.Len() }

func (s *RecordBatchSystem) CompressionAlgorithm() benchmark.CompressionAlgorithm {
	return s.compression
}

func (s *RecordBatchSystem) StartProfiling(_ io.Writer) {}
func (s *RecordBatchSystem) EndProfiling(_ io.Writer)   {}

func (s *RecordBatchSystem) InitBatchSize(_ io.Writer, batchSize int) {
	b, err := schema.NewBatch(s.desc, batchSize)
	if err != nil {
		panic(err)
	}
	s.current = b
}

func (s *RecordBatchSystem) CreateBatch(_ io.Writer, startAt, size int) {
	if err := s.source.WriteColumnar(s.current, startAt, size); err != nil {
		panic(err)
	}
}

func (s *RecordBatchSystem) Process(_ io.Writer) string {
	return digestRows(batch.ToJSONValue(s.current, s.desc.URN))
}

func (s *RecordBatchSystem) Serialize(_ io.Writer) ([]byte, error) {
	return ipc.EncodeBatch(s.cfg.Pool, s.desc, s.current)
}

func (s *RecordBatchSystem) Deserialize(_ io.Writer, buffer []byte) {
	b, err := ipc.DecodeBatch(s.cfg.Pool, s.desc, buffer)
	if err != nil {
		panic(err)
	}
	s.decoded = b
}

func (s *RecordBatchSystem) Clear() {
	s.current.Reset()
	s.decoded = nil
}

func (s *RecordBatchSystem) ShowStats() {}
