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

// Package resourceevents implements the top-level envelope of spec.md §3/§6:
// Resource attributes, an InstrumentationLibrary identifier, one or more
// BatchEvents, and a schema URL. Shaped after the resource+scope+schema_url
// envelope every otel-arrow wire message carries (pkg/otel/common/otlp's
// Resource/Scope types), simplified here to the attribute shape this
// engine actually needs: attributes as string/string pairs, per spec.md
// §9's design note.
package resourceevents

import "github.com/columnar-telemetry/batchengine/pkg/batch"

// Resource carries attributes describing the producer of a ResourceEvents
// message (host, service name, and the like).
type Resource struct {
	Attributes             map[string]string
	DroppedAttributesCount uint32
}

// InstrumentationLibrary identifies the producing library.
type InstrumentationLibrary struct {
	Name    string
	Version string
}

// BatchEvent pairs one Batch with the schema URL of the binding that
// produced it.
type BatchEvent struct {
	SchemaURL string
	Batch     *batch.Batch
}

// InstrumentationLibraryEvents groups the BatchEvents produced by one
// library, plus a dropped-events counter for that group.
type InstrumentationLibraryEvents struct {
	Library            InstrumentationLibrary
	Batches            []BatchEvent
	DroppedEventsCount uint32
}

// ResourceEvents is the top-level envelope of spec.md §3: Resource
// attributes, a library identifier, one or more batches, and a schema URL.
type ResourceEvents struct {
	Resource               Resource
	InstrumentationLibrary []InstrumentationLibraryEvents
	SchemaURL              string
}
