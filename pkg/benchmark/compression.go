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
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// CompressionAlgorithm is the black-box compression step applied to a
// serialized buffer before it leaves the profiled implementation, and
// reversed before deserialization. Spec.md places the codec itself out of
// scope; only the round trip and its cost are exercised here.
type CompressionAlgorithm interface {
	fmt.Stringer
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

type noCompressionAlgo struct{}

// NoCompression returns a CompressionAlgorithm that passes data through
// unchanged, the baseline every other algorithm is compared against.
func NoCompression() CompressionAlgorithm {
	return &noCompressionAlgo{}
}

func (c *noCompressionAlgo) Compress(data []byte) ([]byte, error)   { return data, nil }
func (c *noCompressionAlgo) Decompress(data []byte) ([]byte, error) { return data, nil }
func (c *noCompressionAlgo) String() string                        { return "None" }

type lz4CompressionAlgo struct{}

// Lz4CompressionAlgorithm returns a CompressionAlgorithm backed by
// github.com/pierrec/lz4 block compression.
func Lz4CompressionAlgorithm() CompressionAlgorithm {
	return &lz4CompressionAlgo{}
}

func (c *lz4CompressionAlgo) Compress(data []byte) ([]byte, error) {
	buf := make([]byte, len(data))
	ht := make([]int, 64<<10)

	n, err := lz4.CompressBlock(data, buf, ht)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		// uncompressible
		buf = data
	} else {
		buf = buf[:n]
	}

	return buf, nil
}

func (c *lz4CompressionAlgo) Decompress(data []byte) ([]byte, error) {
	decompressed := make([]byte, 10*len(data))

	n, err := lz4.UncompressBlock(data, decompressed)
	if err != nil {
		return nil, err
	}

	return decompressed[:n], nil
}

func (c *lz4CompressionAlgo) String() string { return "Lz4" }

type zstdCompressionAlgo struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// ZstdCompressionAlgorithm returns a CompressionAlgorithm backed by
// github.com/klauspost/compress/zstd, with a reusable encoder/decoder pair.
func ZstdCompressionAlgorithm() CompressionAlgorithm {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}

	return &zstdCompressionAlgo{encoder: encoder, decoder: decoder}
}

func (c *zstdCompressionAlgo) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	c.encoder.Reset(&buf)
	return c.encoder.EncodeAll(data, nil), nil
}

func (c *zstdCompressionAlgo) Decompress(data []byte) ([]byte, error) {
	if err := c.decoder.Reset(nil); err != nil {
		return nil, err
	}
	return c.decoder.DecodeAll(data, nil)
}

func (c *zstdCompressionAlgo) String() string { return "Zstd" }
