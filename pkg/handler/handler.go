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

// Package handler implements the BatchEvent lifecycle of spec.md §3:
// record, capacity-triggered flush, serialize, deserialize, and JSON
// projection, built on package wire's tag/value codec. A Handler owns
// exactly one ResourceEvents tree — one Resource, one
// InstrumentationLibraryEvents, one BatchEvent wrapping one live Batch —
// the way otel-arrow's RecordBatchBuilder owns exactly one rbb.RecordBatch
// across its record/build/reset cycle.
package handler

import (
	"fmt"
	"io"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/batchcfg"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
	"github.com/columnar-telemetry/batchengine/pkg/werror"
	"github.com/columnar-telemetry/batchengine/pkg/wire"
)

// Handler owns one event type's batch, auto-flushing it (encode, hand to
// Sink if set, then reset) the moment a record would exceed BatchPolicy's
// MaxSize. MaxDelay is carried on Policy but not read here; a collaborator
// that wants delay-triggered flush calls Flush on its own ticker.
type Handler struct {
	Policy  batchcfg.BatchPolicy
	Binding schema.BindingDescriptor

	// Sink receives every flushed buffer. A nil Sink means flushes reset
	// the batch without emitting anything, which is useful for tests and
	// for the benchmark harness, which calls Serialize directly instead.
	Sink io.Writer

	resourceEvents *resourceevents.ResourceEvents
}

// New builds a Handler whose owned Batch is allocated per binding and
// policy.MaxSize, wrapped in a ResourceEvents envelope carrying resource
// and library.
func New(binding schema.BindingDescriptor, policy batchcfg.BatchPolicy, resource resourceevents.Resource, library resourceevents.InstrumentationLibrary, sink io.Writer) (*Handler, error) {
	b, err := schema.NewBatch(binding, policy.MaxSize)
	if err != nil {
		return nil, werror.WrapWithContext(err, map[string]interface{}{"op": "handler.New", "urn": binding.URN})
	}

	return &Handler{
		Policy:  policy,
		Binding: binding,
		Sink:    sink,
		resourceEvents: &resourceevents.ResourceEvents{
			Resource: resource,
			InstrumentationLibrary: []resourceevents.InstrumentationLibraryEvents{
				{Library: library, Batches: []resourceevents.BatchEvent{{SchemaURL: binding.URN, Batch: b}}},
			},
			SchemaURL: binding.URN,
		},
	}, nil
}

// Batch returns the handler's live, owned batch.
func (h *Handler) Batch() *batch.Batch {
	return h.resourceEvents.InstrumentationLibrary[0].Batches[0].Batch
}

// Record checks the owned batch's capacity, flushing it first if full, then
// invokes write to append one logical event. write is normally a closure
// over one of package schema's WriteXxx functions and its event value, e.g.
// func(b *batch.Batch) error { return schema.WriteHTTPTransaction(b, ev) }.
func (h *Handler) Record(write func(*batch.Batch) error) error {
	b := h.Batch()
	if b.Full() {
		if err := h.Flush(); err != nil {
			return err
		}
		b = h.Batch()
		if b.Full() {
			return werror.WrapWithContext(fmt.Errorf("%w: max_size=%d", ErrCapacity, b.MaxSize), map[string]interface{}{"op": "record", "urn": h.Binding.URN})
		}
	}

	if err := write(b); err != nil {
		return werror.WrapWithContext(err, map[string]interface{}{"op": "record", "urn": h.Binding.URN})
	}
	return nil
}

// Flush serializes the owned ResourceEvents tree, writes it to Sink (if
// set), and resets the batch. Flushing an empty batch is a no-op: nothing
// is encoded or written, matching ResetBatchEvent's idempotence.
func (h *Handler) Flush() error {
	if h.Batch().Size == 0 {
		return nil
	}

	data, err := h.Serialize()
	if err != nil {
		return err
	}

	if h.Sink != nil {
		if _, err := h.Sink.Write(data); err != nil {
			return werror.WrapWithContext(fmt.Errorf("%w: %v", ErrIo, err), map[string]interface{}{"op": "flush", "urn": h.Binding.URN})
		}
	}

	h.ResetBatchEvent()
	return nil
}

// Serialize encodes the owned ResourceEvents tree with package wire. It is
// a pure function of the handler's current state: calling it twice without
// an intervening write produces byte-identical output.
func (h *Handler) Serialize() (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data = nil
			err = werror.WrapWithContext(fmt.Errorf("%w: %v", ErrEncode, r), map[string]interface{}{"op": "serialize", "urn": h.Binding.URN})
		}
	}()
	return wire.EncodeResourceEvents(h.resourceEvents), nil
}

// Deserialize replaces the handler's owned ResourceEvents tree atomically
// with the one decoded from data. On error the handler's prior state is
// left untouched.
func (h *Handler) Deserialize(data []byte) error {
	re, err := wire.DecodeResourceEvents(data)
	if err != nil {
		return werror.WrapWithContext(fmt.Errorf("%w: %v", ErrDecode, err), map[string]interface{}{"op": "deserialize", "urn": h.Binding.URN})
	}
	h.resourceEvents = re
	return nil
}

// ResetBatchEvent zeroes the owned batch in place, preserving its allocated
// capacity. Idempotent: calling it twice in a row is the same as once.
func (h *Handler) ResetBatchEvent() {
	h.Batch().Reset()
}

// ToJSONValue projects the owned batch to the row-oriented JSON shape of
// spec.md §4.5, attaching the handler's own schema URL.
func (h *Handler) ToJSONValue() []map[string]interface{} {
	return batch.ToJSONValue(h.Batch(), h.resourceEvents.SchemaURL)
}
