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

package benchmark

import (
	"time"

	"github.com/columnar-telemetry/batchengine/pkg/datagen"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// HTTPTransactionDataset is a synthetic, in-memory dataset of
// http_transaction events, generated once up front so every
// ProfileableSystem under comparison replays exactly the same events.
type HTTPTransactionDataset struct {
	events []schema.HTTPTransactionEvent
}

var httpHosts = []string{"gateway-1", "gateway-2", "api-internal", "edge-proxy", "cache-front"}
var httpCodes = []int64{200, 200, 200, 201, 301, 404, 500, 503}

// NewHTTPTransactionDataset generates size synthetic events using
// datagen.DataGenerator, the way the teacher's fake dataset generators
// derive synthetic spans/metrics from the same generator.
func NewHTTPTransactionDataset(size int) *HTTPTransactionDataset {
	dg := datagen.NewDataGenerator(uint64(time.Unix(1_700_000_000, 0).UnixNano()))

	events := make([]schema.HTTPTransactionEvent, 0, size)
	for i := 0; i < size; i++ {
		dg.AdvanceTime(time.Millisecond)
		dur := dg.GenF64Range(0.1, 250.0)
		events = append(events, schema.HTTPTransactionEvent{
			Host:        httpHosts[i%len(httpHosts)],
			Port:        dg.GenI64Range(1024, 65535),
			HTTPCode:    httpCodes[i%len(httpCodes)],
			DurationMs:  &dur,
			StartUnixNs: dg.PrevTime(),
			EndUnixNs:   dg.CurrentTime(),
		})
	}

	return &HTTPTransactionDataset{events: events}
}

func (d *HTTPTransactionDataset) Len() int {
	return len(d.events)
}

// Slice returns the size events starting at startAt, the same
// (startAt, size) pair Profiler.Profile hands every ProfileableSystem for
// one batch.
func (d *HTTPTransactionDataset) Slice(startAt, size int) []schema.HTTPTransactionEvent {
	return d.events[startAt : startAt+size]
}

// JSONTraceDataset is a synthetic, in-memory dataset of json_trace span
// events, including attribute/event/link auxiliary rows, exercising the
// engine's auxiliary-entity path under benchmark.
type JSONTraceDataset struct {
	events []schema.JSONTraceEvent
}

var spanNames = []string{"GET /users", "POST /orders", "GET /health", "PUT /cart", "DELETE /session"}

// NewJSONTraceDataset generates size synthetic spans, each carrying two
// attributes, zero or one span event, and zero or one link, so every
// auxiliary entity kind declared by schema.JSONTraceDescriptor is
// exercised.
func NewJSONTraceDataset(size int) *JSONTraceDataset {
	dg := datagen.NewDataGenerator(uint64(time.Unix(1_700_000_000, 0).UnixNano()))

	events := make([]schema.JSONTraceEvent, 0, size)
	for i := 0; i < size; i++ {
		dg.AdvanceTime(time.Millisecond)
		dg.NextId16Bits()
		dg.NextId8Bits()

		kind := dg.GenI64Range(1, 5)
		ev := schema.JSONTraceEvent{
			TraceID: append([]byte(nil), dg.Id16Bits()...),
			SpanID:  append([]byte(nil), dg.Id8Bits()...),
			Name:    spanNames[i%len(spanNames)],
			Kind:    &kind,
			Attributes: map[string]string{
				"http.method":      "GET",
				"http.status_code": "200",
			},
			StartUnixNs: dg.PrevTime(),
			EndUnixNs:   dg.CurrentTime(),
		}

		if i%3 == 0 {
			ev.Events = []schema.SpanEvent{{Name: "retry", TimestampUnixNano: dg.CurrentTime()}}
		}
		if i%5 == 0 {
			ev.Links = []schema.SpanLink{{TraceID: ev.TraceID, SpanID: ev.SpanID}}
		}

		events = append(events, ev)
	}

	return &JSONTraceDataset{events: events}
}

func (d *JSONTraceDataset) Len() int {
	return len(d.events)
}

func (d *JSONTraceDataset) Slice(startAt, size int) []schema.JSONTraceEvent {
	return d.events[startAt : startAt+size]
}
