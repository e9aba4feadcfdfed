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

// Command batchbench compares the three ProfileableSystem implementations
// (tag/value columnar, Arrow record batch, row-oriented reference) across a
// shared synthetic dataset, per spec.md §8 scenario 6.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/columnar-telemetry/batchengine/pkg/benchmark"
	"github.com/columnar-telemetry/batchengine/pkg/benchmark/impls"
)

var (
	help        = flag.Bool("help", false, "Show help")
	datasetName = flag.String("dataset", "http_transaction", "Dataset to replay: http_transaction or json_trace")
	datasetSize = flag.Int("dataset-size", 10000, "Number of synthetic events to generate")
	batchSizes  = flag.String("batch-sizes", "10,100,1000", "Comma-separated batch sizes to profile")
	compression = flag.String("compression", "zstd", "Compression algorithm: none, lz4 or zstd")
	maxIter     = flag.Uint64("max-iter", 2, "Number of profiling iterations per batch size")
	warmUpIter  = flag.Uint64("warm-up-iter", 0, "Number of leading iterations excluded from measurements")
	logFile     = flag.String("log-file", "output/batchbench.log", "Profiler log file")
	csvPrefix   = flag.String("csv-prefix", "", "If set, export per-metric CSV files with this prefix")
)

func main() {
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	sizes, err := parseBatchSizes(*batchSizes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	compressionAlgo, err := parseCompression(*compression)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	source, err := newSource(*datasetName, *datasetSize)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	profiler := benchmark.NewProfiler(sizes, *logFile, *warmUpIter)
	profiler.Printf("Dataset '%s' (%d events)\n", *datasetName, source.Len())

	systems := []benchmark.ProfileableSystem{
		impls.NewTagValueSystem(source, compressionAlgo),
		impls.NewRecordBatchSystem(source, compressionAlgo),
		impls.NewRowOrientedSystem(source, compressionAlgo),
	}

	for _, system := range systems {
		if err := profiler.Profile(system, *maxIter); err != nil {
			fmt.Fprintf(os.Stderr, "profiling %s: %v\n", benchmark.ProfileableSystemID(system), err)
			os.Exit(1)
		}
	}

	if err := profiler.CheckProcessingResults(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	profiler.PrintResults(*maxIter)
	profiler.PrintPhase1StepsTiming(*maxIter)
	profiler.PrintPhase2StepsTiming(*maxIter)
	profiler.PrintCompressionRatio(*maxIter)

	if *csvPrefix != "" {
		profiler.ExportMetricsTimesCSV(*csvPrefix)
		profiler.ExportMetricsBytesCSV(*csvPrefix)
	}
}

func newSource(name string, size int) (impls.EventSource, error) {
	switch name {
	case "http_transaction":
		return impls.NewHTTPTransactionSource(size), nil
	case "json_trace":
		return impls.NewJSONTraceSource(size), nil
	default:
		return nil, fmt.Errorf("unknown dataset %q: want http_transaction or json_trace", name)
	}
}

func parseCompression(name string) (benchmark.CompressionAlgorithm, error) {
	switch name {
	case "none":
		return benchmark.NoCompression(), nil
	case "lz4":
		return benchmark.Lz4CompressionAlgorithm(), nil
	case "zstd":
		return benchmark.ZstdCompressionAlgorithm(), nil
	default:
		return nil, fmt.Errorf("unknown compression %q: want none, lz4 or zstd", name)
	}
}

func parseBatchSizes(csv string) ([]int, error) {
	fields := strings.Split(csv, ",")
	sizes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid batch size %q: %w", f, err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
