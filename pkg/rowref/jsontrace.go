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

import (
	"sort"

	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// WriteJSONTrace appends one span row plus its attribute/event/link child
// rows as nested Row slices, mirroring schema.WriteJSONTrace's attribute
// key sort so both representations are order-insensitive to the source map.
func WriteJSONTrace(b *Batch, e schema.JSONTraceEvent) error {
	var r Row
	r.Set("@start_time_unix_nano", e.StartUnixNs)
	r.Set("@end_time_unix_nano", e.EndUnixNs)
	r.Set("name", e.Name)
	if e.Kind != nil {
		r.Set("kind", *e.Kind)
	}
	r.Set("trace_id", e.TraceID)
	r.Set("span_id", e.SpanID)

	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]Row, 0, len(keys))
	for _, k := range keys {
		var attr Row
		attr.Set("key", k)
		attr.Set("value", e.Attributes[k])
		attrs = append(attrs, attr)
	}
	if len(attrs) > 0 {
		r.Set("attributes", attrs)
	}

	events := make([]Row, 0, len(e.Events))
	for _, ev := range e.Events {
		var evRow Row
		evRow.Set("name", ev.Name)
		evRow.Set("timestamp_unix_nano", int64(ev.TimestampUnixNano))
		events = append(events, evRow)
	}
	if len(events) > 0 {
		r.Set("events", events)
	}

	links := make([]Row, 0, len(e.Links))
	for _, l := range e.Links {
		var linkRow Row
		linkRow.Set("trace_id", l.TraceID)
		linkRow.Set("span_id", l.SpanID)
		links = append(links, linkRow)
	}
	if len(links) > 0 {
		r.Set("links", links)
	}

	b.Rows = append(b.Rows, r)
	return nil
}
