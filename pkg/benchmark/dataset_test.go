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

import "testing"

func TestHTTPTransactionDatasetIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewHTTPTransactionDataset(50)
	b := NewHTTPTransactionDataset(50)

	if a.Len() != 50 || b.Len() != 50 {
		t.Fatalf("expected 50 events, got %d and %d", a.Len(), b.Len())
	}

	sliceA := a.Slice(10, 5)
	sliceB := b.Slice(10, 5)
	for i := range sliceA {
		ea, eb := sliceA[i], sliceB[i]
		if ea.Host != eb.Host || ea.Port != eb.Port || ea.HTTPCode != eb.HTTPCode ||
			ea.StartUnixNs != eb.StartUnixNs || ea.EndUnixNs != eb.EndUnixNs ||
			(ea.DurationMs == nil) != (eb.DurationMs == nil) ||
			(ea.DurationMs != nil && *ea.DurationMs != *eb.DurationMs) {
			t.Errorf("event %d differs between independently generated datasets: %+v != %+v", i, ea, eb)
		}
	}
}

func TestJSONTraceDatasetExercisesAuxiliaryEntities(t *testing.T) {
	t.Parallel()

	ds := NewJSONTraceDataset(15)
	events := ds.Slice(0, 15)

	var sawEvent, sawLink bool
	for _, e := range events {
		if len(e.Events) > 0 {
			sawEvent = true
		}
		if len(e.Links) > 0 {
			sawLink = true
		}
		if len(e.Attributes) == 0 {
			t.Errorf("expected every span to carry attributes")
		}
	}
	if !sawEvent {
		t.Errorf("expected at least one span to carry a span event")
	}
	if !sawLink {
		t.Errorf("expected at least one span to carry a link")
	}
}
