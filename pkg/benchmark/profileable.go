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
	"fmt"
	"io"
	"strings"
)

// ProfileableSystem is one implementation under comparison by Profiler: a
// way to build a batch of a given size from the shared dataset, process it,
// and round-trip it through one wire encoding. Narrower than the generic
// rbb-era profiler's OTLP-Arrow-conversion-aware interface: this engine has
// no separate OTLP wire format to convert to or from, so there is one
// recording step (CreateBatch) instead of prepare+convert, and Serialize/
// Deserialize carry exactly one buffer per batch instead of a slice of
// protobuf messages.
type ProfileableSystem interface {
	Name() string
	Tags() []string
	DatasetSize() int
	CompressionAlgorithm() CompressionAlgorithm

	StartProfiling(writer io.Writer)
	EndProfiling(writer io.Writer)

	InitBatchSize(writer io.Writer, batchSize int)
	CreateBatch(writer io.Writer, startAt, size int)

	Process(writer io.Writer) string

	Serialize(writer io.Writer) ([]byte, error)
	Deserialize(writer io.Writer, buffer []byte)

	Clear()
	ShowStats()
}

func ProfileableSystemID(ps ProfileableSystem) string {
	return fmt.Sprintf("%s:%s", ps.Name(), strings.Join(ps.Tags()[:], "+"))
}
