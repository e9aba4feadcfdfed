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

// Package impls holds the three ProfileableSystem implementations compared
// by the benchmark harness: tagvalue (pkg/wire), recordbatch (pkg/ipc) and
// roworiented (pkg/rowref). All three are bindable to either event schema
// declared under pkg/schema, so an EventSource carries the dataset plus the
// per-binding writer functions each implementation needs, rather than each
// implementation special-casing http_transaction vs json_trace.
package impls

import (
	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
	"github.com/columnar-telemetry/batchengine/pkg/rowref"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// EventSource binds a synthetic dataset to the binding descriptor and
// writer functions a ProfileableSystem needs to record it into either of
// the two batch representations this engine supports.
type EventSource interface {
	Name() string
	Descriptor() schema.BindingDescriptor
	Len() int
	WriteColumnar(b *batch.Batch, startAt, size int) error
	WriteRow(b *rowref.Batch, startAt, size int) error
}

// HTTPTransactionSource binds benchmark.HTTPTransactionDataset.
type HTTPTransactionSource struct {
	dataset *benchmark.HTTPTransactionDataset
}

func NewHTTPTransactionSource(size int) *HTTPTransactionSource {
	return &HTTPTransactionSource{dataset: benchmark.NewHTTPTransactionDataset(size)}
}

func (s *HTTPTransactionSource) Name() string { return "http_transaction" }

func (s *HTTPTransactionSource) Descriptor() schema.BindingDescriptor {
	return schema.HTTPTransactionDescriptor()
}

func (s *HTTPTransactionSource) Len() int { return s.dataset.Len() }

func (s *HTTPTransactionSource) WriteColumnar(b *batch.Batch, startAt, size int) error {
	for _, e := range s.dataset.Slice(startAt, size) {
		if err := schema.WriteHTTPTransaction(b, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *HTTPTransactionSource) WriteRow(b *rowref.Batch, startAt, size int) error {
	for _, e := range s.dataset.Slice(startAt, size) {
		if err := rowref.WriteHTTPTransaction(b, e); err != nil {
			return err
		}
	}
	return nil
}

// JSONTraceSource binds benchmark.JSONTraceDataset, exercising the
// auxiliary-entity path (attributes, events, links) on every implementation.
type JSONTraceSource struct {
	dataset *benchmark.JSONTraceDataset
}

func NewJSONTraceSource(size int) *JSONTraceSource {
	return &JSONTraceSource{dataset: benchmark.NewJSONTraceDataset(size)}
}

func (s *JSONTraceSource) Name() string { return "json_trace" }

func (s *JSONTraceSource) Descriptor() schema.BindingDescriptor {
	return schema.JSONTraceDescriptor()
}

func (s *JSONTraceSource) Len() int { return s.dataset.Len() }

func (s *JSONTraceSource) WriteColumnar(b *batch.Batch, startAt, size int) error {
	for _, e := range s.dataset.Slice(startAt, size) {
		if err := schema.WriteJSONTrace(b, e); err != nil {
			return err
		}
	}
	return nil
}

func (s *JSONTraceSource) WriteRow(b *rowref.Batch, startAt, size int) error {
	for _, e := range s.dataset.Slice(startAt, size) {
		if err := rowref.WriteJSONTrace(b, e); err != nil {
			return err
		}
	}
	return nil
}
