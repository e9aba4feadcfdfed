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

// Package ipc implements the second wire encoding of spec.md §6: one Arrow
// record batch per BatchEvent, framed with the standard Arrow IPC stream
// protocol (schema message, record-batch message, end-of-stream), built on
// github.com/apache/arrow/go/v12 the way the teacher's
// pkg/otel/arrow_record package frames OTLP Arrow payloads. Auxiliary
// entities map to a List<Struct> field, one struct field per declared
// child column, so a span's attributes/events/links all travel as ordinary
// nested Arrow columns rather than a side channel.
package ipc

import (
	"github.com/apache/arrow/go/v12/arrow"

	"github.com/columnar-telemetry/batchengine/pkg/column"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// layout pins the column ordering shared by BuildSchema, EncodeBatch and
// DecodeBatch: start/end time, then one block of fields per column kind in
// declaration order, then one List<Struct> field per auxiliary entity.
type layout struct {
	i64Start, f64Start, stringStart, boolStart, bytesStart int
	i64SummStart, f64SummStart, auxStart                   int
	total                                                  int
}

func planLayout(desc schema.BindingDescriptor) layout {
	var l layout
	idx := 2 // start_time_unix_nano, end_time_unix_nano
	l.i64Start = idx
	idx += len(desc.I64Columns)
	l.f64Start = idx
	idx += len(desc.F64Columns)
	l.stringStart = idx
	idx += len(desc.StringColumns)
	l.boolStart = idx
	idx += len(desc.BoolColumns)
	l.bytesStart = idx
	idx += len(desc.BytesColumns)
	l.i64SummStart = idx
	idx += len(desc.I64SummaryColumns)
	l.f64SummStart = idx
	idx += len(desc.F64SummaryColumns)
	l.auxStart = idx
	idx += len(desc.AuxiliaryEntities)
	l.total = idx
	return l
}

var quantileStructType = arrow.StructOf(
	arrow.Field{Name: "quantile", Type: arrow.PrimitiveTypes.Float64},
	arrow.Field{Name: "value", Type: arrow.PrimitiveTypes.Float64},
)

func i64SummaryStructType() arrow.DataType {
	return arrow.StructOf(
		arrow.Field{Name: "count", Type: arrow.PrimitiveTypes.Uint64},
		arrow.Field{Name: "sum", Type: arrow.PrimitiveTypes.Int64},
		arrow.Field{Name: "quantiles", Type: arrow.ListOf(quantileStructType)},
	)
}

func f64SummaryStructType() arrow.DataType {
	return arrow.StructOf(
		arrow.Field{Name: "count", Type: arrow.PrimitiveTypes.Uint64},
		arrow.Field{Name: "sum", Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: "quantiles", Type: arrow.ListOf(quantileStructType)},
	)
}

// columnMetadata carries the column.Meta fields Arrow's type system has no
// room for (logical type, unit, description, aggregation temporality,
// monotonicity) as field-level key/value metadata, mirroring how the
// teacher's acommon schema package attaches OTel-specific metadata to
// otherwise plain Arrow fields.
func columnMetadata(d schema.ColumnDecl) arrow.Metadata {
	mono := "false"
	if d.IsMonotonic {
		mono = "true"
	}
	return arrow.NewMetadata(
		[]string{"logical_type", "unit", "description", "aggregation_temporality", "is_monotonic"},
		[]string{d.LogicalType.String(), d.Unit, d.Description, aggTempoString(d.AggTempo), mono},
	)
}

func aggTempoString(t column.AggregationTemporality) string {
	switch t {
	case column.TemporalityDelta:
		return "delta"
	case column.TemporalityCumulative:
		return "cumulative"
	default:
		return "unspecified"
	}
}

func scalarFields(decls []schema.ColumnDecl, dt arrow.DataType) []arrow.Field {
	fields := make([]arrow.Field, len(decls))
	for i, d := range decls {
		fields[i] = arrow.Field{Name: d.Name, Type: dt, Nullable: d.Optional, Metadata: columnMetadata(d)}
	}
	return fields
}

func auxEntityStructFields(aux schema.AuxEntityDecl) []arrow.Field {
	var fields []arrow.Field
	fields = append(fields, scalarFields(aux.I64Columns, arrow.PrimitiveTypes.Int64)...)
	fields = append(fields, scalarFields(aux.F64Columns, arrow.PrimitiveTypes.Float64)...)
	fields = append(fields, scalarFields(aux.StringColumns, arrow.BinaryTypes.String)...)
	fields = append(fields, scalarFields(aux.BoolColumns, arrow.FixedWidthTypes.Boolean)...)
	fields = append(fields, scalarFields(aux.BytesColumns, arrow.BinaryTypes.Binary)...)
	return fields
}

// BuildSchema derives an Arrow schema from a binding descriptor: start/end
// time columns, one column per declared scalar field, and one
// List<Struct> column per auxiliary entity.
func BuildSchema(desc schema.BindingDescriptor) *arrow.Schema {
	l := planLayout(desc)
	fields := make([]arrow.Field, l.total)
	fields[0] = arrow.Field{Name: "start_time_unix_nano", Type: arrow.PrimitiveTypes.Uint64}
	fields[1] = arrow.Field{Name: "end_time_unix_nano", Type: arrow.PrimitiveTypes.Uint64}

	copy(fields[l.i64Start:], scalarFields(desc.I64Columns, arrow.PrimitiveTypes.Int64))
	copy(fields[l.f64Start:], scalarFields(desc.F64Columns, arrow.PrimitiveTypes.Float64))
	copy(fields[l.stringStart:], scalarFields(desc.StringColumns, arrow.BinaryTypes.String))
	copy(fields[l.boolStart:], scalarFields(desc.BoolColumns, arrow.FixedWidthTypes.Boolean))
	copy(fields[l.bytesStart:], scalarFields(desc.BytesColumns, arrow.BinaryTypes.Binary))

	for i, d := range desc.I64SummaryColumns {
		fields[l.i64SummStart+i] = arrow.Field{Name: d.Name, Type: i64SummaryStructType(), Nullable: d.Optional}
	}
	for i, d := range desc.F64SummaryColumns {
		fields[l.f64SummStart+i] = arrow.Field{Name: d.Name, Type: f64SummaryStructType(), Nullable: d.Optional}
	}
	for i, aux := range desc.AuxiliaryEntities {
		structType := arrow.StructOf(auxEntityStructFields(aux)...)
		fields[l.auxStart+i] = arrow.Field{Name: aux.ParentColumn, Type: arrow.ListOf(structType)}
	}

	return arrow.NewSchema(fields, nil)
}
