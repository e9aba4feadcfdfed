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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// digestRows hashes the batch.ToJSONValue/rowref.ToJSONValue projection of
// one batch, so Profile's equivalence check (benchmark.Profiler.
// CheckProcessingResults) can compare what the three representations hold
// without caring how each lays it out internally. encoding/json sorts
// map keys when marshaling a map[string]interface{}, so the digest is
// stable regardless of Go's randomized map iteration order.
func digestRows(rows []map[string]interface{}) string {
	buf, err := json.Marshal(rows)
	if err != nil {
		panic(err)
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
