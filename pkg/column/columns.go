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

// Package column implements the typed column primitives that make up a
// Batch: a named value vector plus, for optional columns, a validity
// bitmap. Column kinds are split into one concrete type each (I64Column,
// F64Column, ...) following the same one-struct-per-kind layout as
// otel-arrow's rbb/column and air/column packages, rather than a generic
// Column[T] — the teacher never parameterizes its columns over T, and the
// per-kind metadata (aggregation temporality, monotonicity) differs enough
// between kinds that a shared generic body would need as many branches as
// separate types would need files.
package column

// MetricKind tags the semantics of a numeric column, mirroring spec.md's
// logical_type enum for metrics.
type MetricKind uint8

const (
	MetricUnspecified MetricKind = iota
	MetricGauge
	MetricSum
	MetricHistogram
	MetricSummary
)

func (k MetricKind) String() string {
	switch k {
	case MetricGauge:
		return "GAUGE"
	case MetricSum:
		return "SUM"
	case MetricHistogram:
		return "HISTOGRAM"
	case MetricSummary:
		return "SUMMARY"
	default:
		return "UNSPECIFIED"
	}
}

// AggregationTemporality distinguishes delta from cumulative SUM columns.
type AggregationTemporality uint8

const (
	TemporalityUnspecified AggregationTemporality = iota
	TemporalityDelta
	TemporalityCumulative
)

// Meta holds the attributes common to every column kind: name, logical
// type, unit/description, and the numeric-metric-only aggregation fields.
// AggregationTemporality and IsMonotonic are only meaningful when
// LogicalType == MetricSum; they are carried on every numeric column for
// wire-shape consistency with the SUM case, matching how the teacher's
// otel/metrics/arrow package shapes every NumberDataPoint column the same
// way regardless of metric kind.
type Meta struct {
	Name                   string
	LogicalType            MetricKind
	Unit                   string
	Description            string
	AggregationTemporality AggregationTemporality
	IsMonotonic            bool
}
