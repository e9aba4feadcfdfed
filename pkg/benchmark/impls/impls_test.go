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
	"path/filepath"
	"testing"

	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
)

// TestThreeSystemsAgreeOnHTTPTransaction mirrors spec.md §8 scenario 6: the
// three ProfileableSystem implementations, run over the same synthetic
// dataset, must agree on every batch's processing digest.
func TestThreeSystemsAgreeOnHTTPTransaction(t *testing.T) {
	t.Parallel()
	assertSystemsAgree(t, "http_transaction")
}

func TestThreeSystemsAgreeOnJSONTrace(t *testing.T) {
	t.Parallel()
	assertSystemsAgree(t, "json_trace")
}

func assertSystemsAgree(t *testing.T, dataset string) {
	t.Helper()

	newSource := func() EventSource {
		switch dataset {
		case "http_transaction":
			return NewHTTPTransactionSource(250)
		case "json_trace":
			return NewJSONTraceSource(250)
		default:
			t.Fatalf("unknown dataset %q", dataset)
			return nil
		}
	}
	source := newSource()

	logfile := filepath.Join(t.TempDir(), "batchbench.log")
	profiler := benchmark.NewProfiler([]int{10, 100, 1000}, logfile, 0)

	systems := []benchmark.ProfileableSystem{
		NewTagValueSystem(source, benchmark.NoCompression()),
		NewRecordBatchSystem(source, benchmark.NoCompression()),
		NewRowOrientedSystem(source, benchmark.NoCompression()),
	}

	for _, system := range systems {
		if err := profiler.Profile(system, 2); err != nil {
			t.Fatalf("profiling %s: %v", benchmark.ProfileableSystemID(system), err)
		}
	}

	if err := profiler.CheckProcessingResults(); err != nil {
		t.Errorf("expected all implementations to agree, got %v", err)
	}
}
