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

// Package batch implements the fixed-capacity columnar container described
// in spec.md §3-4: a row count, parallel start/end time columns, one vector
// of typed columns per value kind, and a list of nested AuxiliaryEntity
// batches for variable-cardinality child records. It is a value object with
// no internal concurrency; its only mutating entry points are the event
// binding's writer function and Reset, mirroring the discipline the
// teacher's rbb.RecordBatchBuilder applies to its own Columns slice.
package batch

import (
	"github.com/columnar-telemetry/batchengine/pkg/column"
)

// Batch is the fixed-capacity columnar container for one event type.
type Batch struct {
	MaxSize int
	Size    int

	StartTimeUnixNano []uint64
	EndTimeUnixNano   []uint64

	I64Columns        []*column.I64Column
	F64Columns        []*column.F64Column
	StringColumns     []*column.StringColumn
	BoolColumns       []*column.BoolColumn
	BytesColumns      []*column.BytesColumn
	I64SummaryColumns []*column.I64SummaryColumn
	F64SummaryColumns []*column.F64SummaryColumn

	AuxiliaryEntities []*AuxiliaryEntity
}

// New allocates a Batch pre-sized for maxSize rows. Column vectors are
// declared by the caller (normally schema.NewBatch) and then
// reserved with Reserve.
func New(maxSize int) *Batch {
	return &Batch{MaxSize: maxSize}
}

// Reserve pre-sizes the time columns and every declared scalar column's
// backing array to MaxSize (summary columns and auxiliary entities are
// left as they are), following the Arrow builder capacity-hint
// convention the IPC handler also uses (see package ipc).
func (b *Batch) Reserve() {
	b.StartTimeUnixNano = make([]uint64, 0, b.MaxSize)
	b.EndTimeUnixNano = make([]uint64, 0, b.MaxSize)
	for _, c := range b.I64Columns {
		c.Values = make([]int64, 0, b.MaxSize)
	}
	for _, c := range b.F64Columns {
		c.Values = make([]float64, 0, b.MaxSize)
	}
	for _, c := range b.StringColumns {
		c.Values = make([]string, 0, b.MaxSize)
	}
	for _, c := range b.BoolColumns {
		c.Values = make([]bool, 0, b.MaxSize)
	}
	for _, c := range b.BytesColumns {
		c.Values = make([][]byte, 0, b.MaxSize)
	}
}

// BeginRow appends the start/end timestamps and increments Size, returning
// the new row's index. It is the commit point of one logical event: a
// binding's writer calls it first, then appends one value to every
// declared column, per spec.md §4.4.
func (b *Batch) BeginRow(startTimeUnixNano, endTimeUnixNano uint64) int {
	b.StartTimeUnixNano = append(b.StartTimeUnixNano, startTimeUnixNano)
	b.EndTimeUnixNano = append(b.EndTimeUnixNano, endTimeUnixNano)
	b.Size++
	return b.Size - 1
}

// Full reports whether the batch has reached its configured capacity.
func (b *Batch) Full() bool {
	return b.Size >= b.MaxSize
}

// Reset zeroes all columns, bitmaps, parent_ranks and size fields,
// preserving allocated capacity. It is idempotent: calling it twice in a
// row yields the same state as calling it once.
func (b *Batch) Reset() {
	b.Size = 0
	b.StartTimeUnixNano = b.StartTimeUnixNano[:0]
	b.EndTimeUnixNano = b.EndTimeUnixNano[:0]
	for _, c := range b.I64Columns {
		c.Reset()
	}
	for _, c := range b.F64Columns {
		c.Reset()
	}
	for _, c := range b.StringColumns {
		c.Reset()
	}
	for _, c := range b.BoolColumns {
		c.Reset()
	}
	for _, c := range b.BytesColumns {
		c.Reset()
	}
	for _, c := range b.I64SummaryColumns {
		c.Reset()
	}
	for _, c := range b.F64SummaryColumns {
		c.Reset()
	}
	for _, aux := range b.AuxiliaryEntities {
		aux.Reset()
	}
}
