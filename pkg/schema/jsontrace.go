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

package schema

import (
	"sort"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
)

// JSONTraceURN identifies the span-style json_trace event schema, taken
// from original_source/examples/json_trace.rs (see spec.md §8 scenarios
// 2-3).
const JSONTraceURN = "urn:event:jsontrace"

// JSONTraceDescriptor declares a span-style binding: one batch row per
// span, plus zero or more rows in each of three auxiliary entities
// (attributes, events, links), all keyed back to the span row by
// parent_ranks.
func JSONTraceDescriptor() BindingDescriptor {
	return BindingDescriptor{
		URN:           JSONTraceURN,
		StringColumns: []ColumnDecl{{Name: "name"}},
		I64Columns:    []ColumnDecl{{Name: "kind", Optional: true}},
		BytesColumns: []ColumnDecl{
			{Name: "trace_id"},
			{Name: "span_id"},
		},
		AuxiliaryEntities: []AuxEntityDecl{
			{
				ParentColumn:  "attributes",
				Kind:          batch.AuxAttribute,
				StringColumns: []ColumnDecl{{Name: "key"}, {Name: "value"}},
			},
			{
				ParentColumn:  "events",
				Kind:          batch.AuxTraceEvent,
				StringColumns: []ColumnDecl{{Name: "name"}},
				I64Columns:    []ColumnDecl{{Name: "timestamp_unix_nano"}},
			},
			{
				ParentColumn: "links",
				Kind:         batch.AuxTraceLink,
				BytesColumns: []ColumnDecl{{Name: "trace_id"}, {Name: "span_id"}},
			},
		},
	}
}

// SpanEvent is one span event child row.
type SpanEvent struct {
	Name              string
	TimestampUnixNano uint64
}

// SpanLink is one span link child row.
type SpanLink struct {
	TraceID []byte
	SpanID  []byte
}

// JSONTraceEvent is one json_trace span. Attributes are stored as a
// string/string map regardless of the source JSON value's type, per the
// design note in spec.md §9: this engine does not yet type attribute
// values.
type JSONTraceEvent struct {
	TraceID     []byte
	SpanID      []byte
	Name        string
	Kind        *int64
	Attributes  map[string]string
	Events      []SpanEvent
	Links       []SpanLink
	StartUnixNs uint64
	EndUnixNs   uint64
}

const (
	traceNameCol    = 0
	traceKindCol    = 0
	traceIDBytesCol = 0
	spanIDBytesCol  = 1

	attrKeyCol   = 0
	attrValueCol = 1

	eventNameCol = 0
	eventTsCol   = 0

	linkTraceIDCol = 0
	linkSpanIDCol  = 1
)

// WriteJSONTrace appends one span row plus its attribute/event/link child
// rows, atomically. Attribute iteration order is normalized (sorted by
// key) so that two callers recording the same event produce byte-identical
// columns regardless of Go map iteration order, matching spec.md §8
// scenario 3's "order-insensitive if the source is unordered" contract.
func WriteJSONTrace(b *batch.Batch, e JSONTraceEvent) error {
	row := b.BeginRow(e.StartUnixNs, e.EndUnixNs)

	b.StringColumns[traceNameCol].Append(e.Name)
	if e.Kind != nil {
		b.I64Columns[traceKindCol].AppendOptional(*e.Kind, true)
	} else {
		b.I64Columns[traceKindCol].AppendOptional(0, false)
	}
	b.BytesColumns[traceIDBytesCol].Append(e.TraceID)
	b.BytesColumns[spanIDBytesCol].Append(e.SpanID)

	attrs := b.AuxiliaryEntities[0]
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs.AppendChild(row)
		attrs.StringColumns[attrKeyCol].Append(k)
		attrs.StringColumns[attrValueCol].Append(e.Attributes[k])
	}

	events := b.AuxiliaryEntities[1]
	for _, ev := range e.Events {
		events.AppendChild(row)
		events.StringColumns[eventNameCol].Append(ev.Name)
		events.I64Columns[eventTsCol].Append(int64(ev.TimestampUnixNano))
	}

	links := b.AuxiliaryEntities[2]
	for _, l := range e.Links {
		links.AppendChild(row)
		links.BytesColumns[linkTraceIDCol].Append(l.TraceID)
		links.BytesColumns[linkSpanIDCol].Append(l.SpanID)
	}

	return nil
}
