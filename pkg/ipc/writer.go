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

package ipc

import (
	"bytes"

	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/ipc"
	"github.com/apache/arrow/go/v12/arrow/memory"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/column"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// EncodeBatch builds one Arrow record from b following desc's column
// layout, then frames it as a single-record Arrow IPC stream (schema
// message, record-batch message, end-of-stream) — no dictionary-batch
// messages, since this engine never dictionary-encodes a column.
func EncodeBatch(pool memory.Allocator, desc schema.BindingDescriptor, b *batch.Batch) ([]byte, error) {
	arrowSchema := BuildSchema(desc)
	rb := array.NewRecordBuilder(pool, arrowSchema)
	defer rb.Release()

	l := planLayout(desc)
	fillTimeColumns(rb, b)
	fillScalarColumns(rb, l, desc, b)
	fillSummaryColumns(rb, l, desc, b)
	fillAuxiliaryEntities(rb, l, desc, b)

	record := rb.NewRecord()
	defer record.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(arrowSchema), ipc.WithAllocator(pool))
	if err := w.Write(record); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fillTimeColumns(rb *array.RecordBuilder, b *batch.Batch) {
	start := rb.Field(0).(*array.Uint64Builder)
	end := rb.Field(1).(*array.Uint64Builder)
	start.AppendValues(b.StartTimeUnixNano, nil)
	end.AppendValues(b.EndTimeUnixNano, nil)
}

func fillScalarColumns(rb *array.RecordBuilder, l layout, desc schema.BindingDescriptor, b *batch.Batch) {
	for i, c := range b.I64Columns {
		fb := rb.Field(l.i64Start + i).(*array.Int64Builder)
		appendI64(fb, c)
	}
	for i, c := range b.F64Columns {
		fb := rb.Field(l.f64Start + i).(*array.Float64Builder)
		appendF64(fb, c)
	}
	for i, c := range b.StringColumns {
		fb := rb.Field(l.stringStart + i).(*array.StringBuilder)
		appendString(fb, c)
	}
	for i, c := range b.BoolColumns {
		fb := rb.Field(l.boolStart + i).(*array.BooleanBuilder)
		appendBool(fb, c)
	}
	for i, c := range b.BytesColumns {
		fb := rb.Field(l.bytesStart + i).(*array.BinaryBuilder)
		appendBytes(fb, c)
	}
}

func appendI64(fb *array.Int64Builder, c *column.I64Column) {
	for i, v := range c.Values {
		if !c.Optional || c.IsValid(i) {
			fb.Append(v)
		} else {
			fb.AppendNull()
		}
	}
}

func appendF64(fb *array.Float64Builder, c *column.F64Column) {
	for i, v := range c.Values {
		if !c.Optional || c.IsValid(i) {
			fb.Append(v)
		} else {
			fb.AppendNull()
		}
	}
}

func appendString(fb *array.StringBuilder, c *column.StringColumn) {
	for i, v := range c.Values {
		if !c.Optional || c.IsValid(i) {
			fb.Append(v)
		} else {
			fb.AppendNull()
		}
	}
}

func appendBool(fb *array.BooleanBuilder, c *column.BoolColumn) {
	for i, v := range c.Values {
		if !c.Optional || c.IsValid(i) {
			fb.Append(v)
		} else {
			fb.AppendNull()
		}
	}
}

func appendBytes(fb *array.BinaryBuilder, c *column.BytesColumn) {
	for i, v := range c.Values {
		if !c.Optional || c.IsValid(i) {
			fb.Append(v)
		} else {
			fb.AppendNull()
		}
	}
}

func fillSummaryColumns(rb *array.RecordBuilder, l layout, desc schema.BindingDescriptor, b *batch.Batch) {
	for i, c := range b.I64SummaryColumns {
		sb := rb.Field(l.i64SummStart + i).(*array.StructBuilder)
		countB := sb.FieldBuilder(0).(*array.Uint64Builder)
		sumB := sb.FieldBuilder(1).(*array.Int64Builder)
		qB := sb.FieldBuilder(2).(*array.ListBuilder)
		for row := 0; row < c.Len(); row++ {
			sb.Append(true)
			countB.Append(c.Count[row])
			sumB.Append(c.Sum[row])
			appendQuantiles(qB, c.Quantiles[row])
		}
	}
	for i, c := range b.F64SummaryColumns {
		sb := rb.Field(l.f64SummStart + i).(*array.StructBuilder)
		countB := sb.FieldBuilder(0).(*array.Uint64Builder)
		sumB := sb.FieldBuilder(1).(*array.Float64Builder)
		qB := sb.FieldBuilder(2).(*array.ListBuilder)
		for row := 0; row < c.Len(); row++ {
			sb.Append(true)
			countB.Append(c.Count[row])
			sumB.Append(c.Sum[row])
			appendQuantiles(qB, c.Quantiles[row])
		}
	}
}

func appendQuantiles(qB *array.ListBuilder, qs []column.QuantileValue) {
	qB.Append(true)
	qvB := qB.ValueBuilder().(*array.StructBuilder)
	quantileB := qvB.FieldBuilder(0).(*array.Float64Builder)
	valueB := qvB.FieldBuilder(1).(*array.Float64Builder)
	for _, q := range qs {
		qvB.Append(true)
		quantileB.Append(q.Quantile)
		valueB.Append(q.Value)
	}
}

func fillAuxiliaryEntities(rb *array.RecordBuilder, l layout, desc schema.BindingDescriptor, b *batch.Batch) {
	for i, aux := range b.AuxiliaryEntities {
		lb := rb.Field(l.auxStart + i).(*array.ListBuilder)
		sb := lb.ValueBuilder().(*array.StructBuilder)

		fieldBuilders := auxFieldBuilders(sb, desc.AuxiliaryEntities[i])

		// ParentRanks is non-decreasing by construction, so one
		// monotonic cursor walks every child row in O(children) total
		// instead of rescanning from the start for every parent row.
		cursor := 0
		for parentRow := 0; parentRow < b.Size; parentRow++ {
			lb.Append(true)
			for cursor < len(aux.ParentRanks) && int(aux.ParentRanks[cursor]) == parentRow {
				sb.Append(true)
				fieldBuilders.appendRow(aux, cursor)
				cursor++
			}
		}
	}
}

// auxFieldBuilder indexes an auxiliary entity's struct field builders by
// kind so appendRow can walk every declared child column for one row.
type auxFieldBuilder struct {
	i64 []*array.Int64Builder
	f64 []*array.Float64Builder
	str []*array.StringBuilder
	bl  []*array.BooleanBuilder
	byt []*array.BinaryBuilder
}

func auxFieldBuilders(sb *array.StructBuilder, decl schema.AuxEntityDecl) auxFieldBuilder {
	var fb auxFieldBuilder
	idx := 0
	for range decl.I64Columns {
		fb.i64 = append(fb.i64, sb.FieldBuilder(idx).(*array.Int64Builder))
		idx++
	}
	for range decl.F64Columns {
		fb.f64 = append(fb.f64, sb.FieldBuilder(idx).(*array.Float64Builder))
		idx++
	}
	for range decl.StringColumns {
		fb.str = append(fb.str, sb.FieldBuilder(idx).(*array.StringBuilder))
		idx++
	}
	for range decl.BoolColumns {
		fb.bl = append(fb.bl, sb.FieldBuilder(idx).(*array.BooleanBuilder))
		idx++
	}
	for range decl.BytesColumns {
		fb.byt = append(fb.byt, sb.FieldBuilder(idx).(*array.BinaryBuilder))
		idx++
	}
	return fb
}

func (fb auxFieldBuilder) appendRow(aux *batch.AuxiliaryEntity, j int) {
	for i, b := range fb.i64 {
		c := aux.I64Columns[i]
		if !c.Optional || c.IsValid(j) {
			b.Append(c.Values[j])
		} else {
			b.AppendNull()
		}
	}
	for i, b := range fb.f64 {
		c := aux.F64Columns[i]
		if !c.Optional || c.IsValid(j) {
			b.Append(c.Values[j])
		} else {
			b.AppendNull()
		}
	}
	for i, b := range fb.str {
		c := aux.StringColumns[i]
		if !c.Optional || c.IsValid(j) {
			b.Append(c.Values[j])
		} else {
			b.AppendNull()
		}
	}
	for i, b := range fb.bl {
		c := aux.BoolColumns[i]
		if !c.Optional || c.IsValid(j) {
			b.Append(c.Values[j])
		} else {
			b.AppendNull()
		}
	}
	for i, b := range fb.byt {
		c := aux.BytesColumns[i]
		if !c.Optional || c.IsValid(j) {
			b.Append(c.Values[j])
		} else {
			b.AppendNull()
		}
	}
}
