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

const compressionFixture = "This is an example of text to compress." +
	"This is an example of text to compress." +
	"This is an example of text to compress."

func TestNoCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	algo := NoCompression()
	out, err := algo.Compress([]byte(compressionFixture))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	back, err := algo.Decompress(out)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(back) != compressionFixture {
		t.Errorf("expected %q, got %q", compressionFixture, string(back))
	}
	if algo.String() != "None" {
		t.Errorf("expected tag 'None', got %q", algo.String())
	}
}

func TestLz4RoundTrip(t *testing.T) {
	t.Parallel()

	algo := Lz4CompressionAlgorithm()
	compressed, err := algo.Compress([]byte(compressionFixture))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	decompressed, err := algo.Decompress(compressed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(decompressed) != compressionFixture {
		t.Errorf("expected %q, got %q", compressionFixture, string(decompressed))
	}
}

func TestZstdRoundTrip(t *testing.T) {
	t.Parallel()

	algo := ZstdCompressionAlgorithm()
	compressed, err := algo.Compress([]byte(compressionFixture))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	decompressed, err := algo.Decompress(compressed)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(decompressed) != compressionFixture {
		t.Errorf("expected %q, got %q", compressionFixture, string(decompressed))
	}
}
