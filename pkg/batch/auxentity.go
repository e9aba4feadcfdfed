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

package batch

import "github.com/columnar-telemetry/batchengine/pkg/column"

// AuxKind tags the semantics of an auxiliary entity, mirroring spec.md's
// aux-entity logical type enum.
type AuxKind uint8

const (
	AuxAttribute AuxKind = iota
	AuxTraceEvent
	AuxTraceLink
)

// AuxiliaryEntity is a nested child batch for variable-cardinality data:
// one parent row (a span, say) may own N attributes, M events, K links.
// Child rows are keyed back to their parent row by ParentRanks, which stays
// non-decreasing as long as callers append each parent's child rows
// contiguously and in parent-row order (see AppendChild). Auxiliary entities may
// not themselves contain further auxiliary entities — this is the one
// nesting level spec.md §9 allows; deeper nesting is rejected at schema
// registration time (see package schema).
type AuxiliaryEntity struct {
	ParentColumn string
	LogicalType  AuxKind
	Size         int
	ParentRanks  []uint32

	I64Columns        []*column.I64Column
	F64Columns        []*column.F64Column
	StringColumns     []*column.StringColumn
	BoolColumns       []*column.BoolColumn
	BytesColumns      []*column.BytesColumn
	I64SummaryColumns []*column.I64SummaryColumn
	F64SummaryColumns []*column.F64SummaryColumn
}

// NewAuxiliaryEntity creates an empty auxiliary entity keyed by
// parentColumn on the enclosing batch.
func NewAuxiliaryEntity(parentColumn string, kind AuxKind) *AuxiliaryEntity {
	return &AuxiliaryEntity{ParentColumn: parentColumn, LogicalType: kind}
}

// AppendChild records one child row belonging to parentRow, the index of
// the parent batch row being written. Callers append child rows for a given
// parent contiguously (all of one span's attributes before moving to the
// next span), which is what keeps ParentRanks non-decreasing.
func (a *AuxiliaryEntity) AppendChild(parentRow int) int {
	a.ParentRanks = append(a.ParentRanks, uint32(parentRow))
	a.Size++
	return a.Size - 1
}

// Reset zeroes the entity's columns, bitmaps, ParentRanks and Size,
// preserving allocated capacity.
func (a *AuxiliaryEntity) Reset() {
	a.Size = 0
	a.ParentRanks = a.ParentRanks[:0]
	for _, c := range a.I64Columns {
		c.Reset()
	}
	for _, c := range a.F64Columns {
		c.Reset()
	}
	for _, c := range a.StringColumns {
		c.Reset()
	}
	for _, c := range a.BoolColumns {
		c.Reset()
	}
	for _, c := range a.BytesColumns {
		c.Reset()
	}
	for _, c := range a.I64SummaryColumns {
		c.Reset()
	}
	for _, c := range a.F64SummaryColumns {
		c.Reset()
	}
}
