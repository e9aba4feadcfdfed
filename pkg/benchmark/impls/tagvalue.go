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
	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
	"github.com/columnar-telemetry/batchengine/pkg/wire"
)

// TagValueSystem profiles the tag/value columnar wire encoding of pkg/wire:
// one ResourceEvents envelope wrapping a single Batch, serialized as the
// length-prefixed tag/value messages spec.md §6 describes.
type TagValueSystem struct {
	source      EventSource
	desc        schema.BindingDescriptor
	compression benchmark.CompressionAlgorithm

	current *batch.Batch
	decoded *resourceevents.ResourceEvents
}

func NewTagValueSystem(source EventSource, compression benchmark.CompressionAlgorithm) *TagValueSystem {
	return &TagValueSystem{
		source:      source,
		desc:        source.Descriptor(),
		compression: compression,
	}
}

func (s *TagValueSystem) Name() string { return "TAG_VALUE" }

func (s *TagValueSystem) Tags() []string {
	tags := []string{s.source.Name()}
	if c := s.compression.String(); c != "" {
		tags = append(tags, c)
	}
	return tags
}

func (s *TagValueSystem) DatasetSize() int { return s.source.Len() }

func (s *TagValueSystem) CompressionAlgorithm() benchmark.CompressionAlgorithm {
	return s.compression
}

func (s *TagValueSystem) StartProfiling(_ io.Writer) {}
func (s *TagValueSystem) EndProfiling(_ io.Writer)   {}

func (s *TagValueSystem) InitBatchSize(_ io.Writer, batchSize int) {
	b, err := schema.NewBatch(s.desc, batchSize)
	if err != nil {
		panic(err)
	}
	s.current = b
}

func (s *TagValueSystem) CreateBatch(_ io.Writer, startAt, size int) {
	if err := s.source.WriteColumnar(s.current, startAt, size); err != nil {
		panic(err)
	}
}

func (s *TagValueSystem) Process(_ io.Writer) string {
	return digestRows(batch.ToJSONValue(s.current, s.desc.URN))
}

func (s *TagValueSystem) Serialize(_ io.Writer) ([]byte, error) {
	re := &resourceevents.ResourceEvents{
		SchemaURL: s.desc.URN,
		InstrumentationLibrary: []resourceevents.InstrumentationLibraryEvents{
			{
				Library: resourceevents.InstrumentationLibrary{Name: "batchbench", Version: "1.0.0"},
				Batches: []resourceevents.BatchEvent{{SchemaURL: s.desc.URN, Batch: s.current}},
			},
		},
	}
	return wire.EncodeResourceEvents(re), nil
}

func (s *TagValueSystem) Deserialize(_ io.Writer, buffer []byte) {
	re, err := wire.DecodeResourceEvents(buffer)
	if err != nil {
		panic(err)
	}
	s.decoded = re
}

func (s *TagValueSystem) Clear() {
	s.current.Reset()
	s.decoded = nil
}

func (s *TagValueSystem) ShowStats() {}
