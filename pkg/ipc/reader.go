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
	"fmt"

	"github.com/apache/arrow/go/v12/arrow"
	"github.com/apache/arrow/go/v12/arrow/array"
	"github.com/apache/arrow/go/v12/arrow/ipc"
	"github.com/apache/arrow/go/v12/arrow/memory"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/column"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

// DecodeBatch parses a single-record Arrow IPC stream back into a Batch
// matching desc's column layout. Only the first record in the stream is
// read; this engine never writes more than one per BatchEvent.
func DecodeBatch(pool memory.Allocator, desc schema.BindingDescriptor, data []byte) (*batch.Batch, error) {
	r, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(pool))
	if err != nil {
		return nil, err
	}
	defer r.Release()

	if !r.Next() {
		return nil, fmt.Errorf("ipc: stream contains no record batch")
	}
	record := r.Record()

	l := planLayout(desc)
	bt, err := schema.NewBatch(desc, int(record.NumRows()))
	if err != nil {
		return nil, err
	}

	readTimeColumns(record, bt)
	readScalarColumns(record, l, bt)
	readSummaryColumns(record, l, bt)
	readAuxiliaryEntities(record, l, bt)
	bt.Size = int(record.NumRows())

	return bt, nil
}

func readTimeColumns(record arrow.Record, bt *batch.Batch) {
	start := record.Column(0).(*array.Uint64)
	end := record.Column(1).(*array.Uint64)
	for i := 0; i < start.Len(); i++ {
		bt.StartTimeUnixNano = append(bt.StartTimeUnixNano, start.Value(i))
		bt.EndTimeUnixNano = append(bt.EndTimeUnixNano, end.Value(i))
	}
}

func readScalarColumns(record arrow.Record, l layout, bt *batch.Batch) {
	for i, c := range bt.I64Columns {
		arr := record.Column(l.i64Start + i).(*array.Int64)
		readI64(arr, c)
	}
	for i, c := range bt.F64Columns {
		arr := record.Column(l.f64Start + i).(*array.Float64)
		readF64(arr, c)
	}
	for i, c := range bt.StringColumns {
		arr := record.Column(l.stringStart + i).(*array.String)
		readString(arr, c)
	}
	for i, c := range bt.BoolColumns {
		arr := record.Column(l.boolStart + i).(*array.Boolean)
		readBool(arr, c)
	}
	for i, c := range bt.BytesColumns {
		arr := record.Column(l.bytesStart + i).(*array.Binary)
		readBytes(arr, c)
	}
}

func readI64(arr *array.Int64, c *column.I64Column) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.AppendOptional(0, false)
			continue
		}
		if c.Optional {
			c.AppendOptional(arr.Value(i), true)
		} else {
			c.Append(arr.Value(i))
		}
	}
}

func readF64(arr *array.Float64, c *column.F64Column) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.AppendOptional(0, false)
			continue
		}
		if c.Optional {
			c.AppendOptional(arr.Value(i), true)
		} else {
			c.Append(arr.Value(i))
		}
	}
}

func readString(arr *array.String, c *column.StringColumn) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.AppendOptional("", false)
			continue
		}
		if c.Optional {
			c.AppendOptional(arr.Value(i), true)
		} else {
			c.Append(arr.Value(i))
		}
	}
}

func readBool(arr *array.Boolean, c *column.BoolColumn) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.AppendOptional(false, false)
			continue
		}
		if c.Optional {
			c.AppendOptional(arr.Value(i), true)
		} else {
			c.Append(arr.Value(i))
		}
	}
}

func readBytes(arr *array.Binary, c *column.BytesColumn) {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			c.AppendOptional(nil, false)
			continue
		}
		v := append([]byte(nil), arr.Value(i)...)
		if c.Optional {
			c.AppendOptional(v, true)
		} else {
			c.Append(v)
		}
	}
}

func readSummaryColumns(record arrow.Record, l layout, bt *batch.Batch) {
	for i, c := range bt.I64SummaryColumns {
		arr := record.Column(l.i64SummStart + i).(*array.Struct)
		readI64Summary(arr, c)
	}
	for i, c := range bt.F64SummaryColumns {
		arr := record.Column(l.f64SummStart + i).(*array.Struct)
		readF64Summary(arr, c)
	}
}

func readQuantiles(list *array.List, row int) []column.QuantileValue {
	start, end := list.ValueOffsets(row)
	values := list.ListValues().(*array.Struct)
	qCol := values.Field(0).(*array.Float64)
	vCol := values.Field(1).(*array.Float64)
	out := make([]column.QuantileValue, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, column.QuantileValue{Quantile: qCol.Value(int(i)), Value: vCol.Value(int(i))})
	}
	return out
}

func readI64Summary(arr *array.Struct, c *column.I64SummaryColumn) {
	countCol := arr.Field(0).(*array.Uint64)
	sumCol := arr.Field(1).(*array.Int64)
	qListCol := arr.Field(2).(*array.List)
	for i := 0; i < arr.Len(); i++ {
		c.Append(countCol.Value(i), sumCol.Value(i), readQuantiles(qListCol, i))
	}
}

func readF64Summary(arr *array.Struct, c *column.F64SummaryColumn) {
	countCol := arr.Field(0).(*array.Uint64)
	sumCol := arr.Field(1).(*array.Float64)
	qListCol := arr.Field(2).(*array.List)
	for i := 0; i < arr.Len(); i++ {
		c.Append(countCol.Value(i), sumCol.Value(i), readQuantiles(qListCol, i))
	}
}

func readAuxiliaryEntities(record arrow.Record, l layout, bt *batch.Batch) {
	for i, aux := range bt.AuxiliaryEntities {
		listArr := record.Column(l.auxStart + i).(*array.List)
		structArr := listArr.ListValues().(*array.Struct)

		fieldReaders := auxFieldReaders(structArr, aux)

		for parentRow := 0; parentRow < listArr.Len(); parentRow++ {
			start, end := listArr.ValueOffsets(parentRow)
			for j := start; j < end; j++ {
				aux.ParentRanks = append(aux.ParentRanks, uint32(parentRow))
				aux.Size++
				fieldReaders.readRow(int(j))
			}
		}
	}
}

type auxFieldReader struct {
	i64 []*array.Int64
	f64 []*array.Float64
	str []*array.String
	bl  []*array.Boolean
	byt []*array.Binary

	target *batch.AuxiliaryEntity
}

func auxFieldReaders(structArr *array.Struct, target *batch.AuxiliaryEntity) auxFieldReader {
	var fr auxFieldReader
	fr.target = target
	idx := 0
	for range target.I64Columns {
		fr.i64 = append(fr.i64, structArr.Field(idx).(*array.Int64))
		idx++
	}
	for range target.F64Columns {
		fr.f64 = append(fr.f64, structArr.Field(idx).(*array.Float64))
		idx++
	}
	for range target.StringColumns {
		fr.str = append(fr.str, structArr.Field(idx).(*array.String))
		idx++
	}
	for range target.BoolColumns {
		fr.bl = append(fr.bl, structArr.Field(idx).(*array.Boolean))
		idx++
	}
	for range target.BytesColumns {
		fr.byt = append(fr.byt, structArr.Field(idx).(*array.Binary))
		idx++
	}
	return fr
}

func (fr auxFieldReader) readRow(j int) {
	for i, arr := range fr.i64 {
		c := fr.target.I64Columns[i]
		if arr.IsNull(j) {
			c.AppendOptional(0, false)
		} else if c.Optional {
			c.AppendOptional(arr.Value(j), true)
		} else {
			c.Append(arr.Value(j))
		}
	}
	for i, arr := range fr.f64 {
		c := fr.target.F64Columns[i]
		if arr.IsNull(j) {
			c.AppendOptional(0, false)
		} else if c.Optional {
			c.AppendOptional(arr.Value(j), true)
		} else {
			c.Append(arr.Value(j))
		}
	}
	for i, arr := range fr.str {
		c := fr.target.StringColumns[i]
		if arr.IsNull(j) {
			c.AppendOptional("", false)
		} else if c.Optional {
			c.AppendOptional(arr.Value(j), true)
		} else {
			c.Append(arr.Value(j))
		}
	}
	for i, arr := range fr.bl {
		c := fr.target.BoolColumns[i]
		if arr.IsNull(j) {
			c.AppendOptional(false, false)
		} else if c.Optional {
			c.AppendOptional(arr.Value(j), true)
		} else {
			c.Append(arr.Value(j))
		}
	}
	for i, arr := range fr.byt {
		c := fr.target.BytesColumns[i]
		v := append([]byte(nil), arr.Value(j)...)
		if arr.IsNull(j) {
			c.AppendOptional(nil, false)
		} else if c.Optional {
			c.AppendOptional(v, true)
		} else {
			c.Append(v)
		}
	}
}
