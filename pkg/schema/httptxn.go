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

import "github.com/columnar-telemetry/batchengine/pkg/batch"

// HTTPTransactionURN identifies the metric-style http_transaction event
// schema, taken from original_source/examples/http_transaction.rs (see
// spec.md §8 scenario 1).
const HTTPTransactionURN = "urn:event:httptxn"

// HTTPTransactionDescriptor declares a metric-style binding: one batch row
// per event, no auxiliary entities.
func HTTPTransactionDescriptor() BindingDescriptor {
	return BindingDescriptor{
		URN:           HTTPTransactionURN,
		StringColumns: []ColumnDecl{{Name: "host"}},
		I64Columns: []ColumnDecl{
			{Name: "port"},
			{Name: "http_code"},
		},
		F64Columns: []ColumnDecl{
			{Name: "duration_ms", Optional: true, Unit: "ms"},
		},
	}
}

// HTTPTransactionEvent is one http_transaction event.
type HTTPTransactionEvent struct {
	Host        string
	Port        int64
	HTTPCode    int64
	DurationMs  *float64
	StartUnixNs uint64
	EndUnixNs   uint64
}

// column indices are compile-time constants of this binding: no run-time
// name lookup happens in WriteHTTPTransaction.
const (
	httpHostCol = 0
	httpPortCol = 0
	httpCodeCol = 1
	httpDurCol  = 0
)

// WriteHTTPTransaction appends one http_transaction row across every
// declared column atomically: it is only safe to call on a batch built
// from HTTPTransactionDescriptor via NewBatch.
func WriteHTTPTransaction(b *batch.Batch, e HTTPTransactionEvent) error {
	b.BeginRow(e.StartUnixNs, e.EndUnixNs)
	b.StringColumns[httpHostCol].Append(e.Host)
	b.I64Columns[httpPortCol].Append(e.Port)
	b.I64Columns[httpCodeCol].Append(e.HTTPCode)
	if e.DurationMs != nil {
		b.F64Columns[httpDurCol].AppendOptional(*e.DurationMs, true)
	} else {
		b.F64Columns[httpDurCol].AppendOptional(0, false)
	}
	return nil
}
