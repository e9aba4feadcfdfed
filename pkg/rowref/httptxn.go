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

import "github.com/columnar-telemetry/batchengine/pkg/schema"

// WriteHTTPTransaction appends one http_transaction row, mirroring
// schema.WriteHTTPTransaction's field set exactly so the two
// representations can be compared row by row.
func WriteHTTPTransaction(b *Batch, e schema.HTTPTransactionEvent) error {
	var r Row
	r.Set("@start_time_unix_nano", e.StartUnixNs)
	r.Set("@end_time_unix_nano", e.EndUnixNs)
	r.Set("host", e.Host)
	r.Set("port", e.Port)
	r.Set("http_code", e.HTTPCode)
	if e.DurationMs != nil {
		r.Set("duration_ms", *e.DurationMs)
	}
	b.Rows = append(b.Rows, r)
	return nil
}
