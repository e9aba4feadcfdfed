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

// Package schema implements event schema bindings (spec.md §4.4): each
// event type statically declares the columns and auxiliary entities its
// batch holds (BindingDescriptor), and supplies a row-into-batch writer
// function that appends one logical event across every declared column
// atomically.
//
// This is the re-architected shape spec.md §9 calls for: the source this
// spec was distilled from organizes a column-index -> field mapping per
// event type through type-parameterized generics; here every event type
// instead exposes a plain Go struct descriptor plus a dedicated Write
// function, column indices are package-level constants the writer uses
// directly, and there is no run-time name lookup on the hot path.
package schema

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/column"
)

// ErrNestedAuxiliaryEntity is returned by Validate when a binding declares
// an auxiliary entity that itself nests further auxiliary entities.
// spec.md §9 marks deeper nesting as an open, undecided question and
// instructs implementers not to guess: reject it instead.
var ErrNestedAuxiliaryEntity = errors.New("schema: auxiliary entities may not nest further auxiliary entities")

// ColumnDecl is one (name, optional, logical-type, unit) column
// declaration.
type ColumnDecl struct {
	Name         string
	Optional     bool
	LogicalType  column.MetricKind
	Unit         string
	Description  string
	AggTempo     column.AggregationTemporality
	IsMonotonic  bool
	IsSummary    bool
	IsBytesValue bool
}

// AuxEntityDecl declares one auxiliary entity: the parent column it is
// keyed by, its logical kind, and the columns its child rows carry. Nested
// is only present so Validate has something concrete to reject; a
// well-formed binding never populates it.
type AuxEntityDecl struct {
	ParentColumn  string
	Kind          batch.AuxKind
	I64Columns    []ColumnDecl
	F64Columns    []ColumnDecl
	StringColumns []ColumnDecl
	BoolColumns   []ColumnDecl
	BytesColumns  []ColumnDecl
	Nested        []AuxEntityDecl
}

// BindingDescriptor is the static declaration for one event type's batch
// layout: the URN identifying the logical event schema, the ordered column
// declarations per kind, and the auxiliary entities it carries.
type BindingDescriptor struct {
	URN               string
	I64Columns        []ColumnDecl
	F64Columns        []ColumnDecl
	StringColumns     []ColumnDecl
	BoolColumns       []ColumnDecl
	BytesColumns      []ColumnDecl
	I64SummaryColumns []ColumnDecl
	F64SummaryColumns []ColumnDecl
	AuxiliaryEntities []AuxEntityDecl
}

// Validate rejects binding descriptors that declare nested auxiliary
// entities. It is called by NewBatch, so a misdeclared schema fails at
// registration time rather than on the first record. Every offending
// entity is reported at once, via multierr, rather than stopping at the
// first one: a binding declared with several bad entities should not make
// the author fix and re-run one error at a time.
func Validate(desc BindingDescriptor) error {
	var errs error
	for _, aux := range desc.AuxiliaryEntities {
		if len(aux.Nested) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: entity %q declares %d nested entities", ErrNestedAuxiliaryEntity, aux.ParentColumn, len(aux.Nested)))
		}
	}
	return errs
}

// NewBatch validates desc and builds a Batch with every declared column and
// auxiliary entity allocated; the batch's time and scalar columns are
// reserved to maxSize, while summary and auxiliary-entity columns are not.
func NewBatch(desc BindingDescriptor, maxSize int) (*batch.Batch, error) {
	if err := Validate(desc); err != nil {
		return nil, err
	}

	b := batch.New(maxSize)
	b.I64Columns = newI64Columns(desc.I64Columns)
	b.F64Columns = newF64Columns(desc.F64Columns)
	b.StringColumns = newStringColumns(desc.StringColumns)
	b.BoolColumns = newBoolColumns(desc.BoolColumns)
	b.BytesColumns = newBytesColumns(desc.BytesColumns)
	b.I64SummaryColumns = newI64SummaryColumns(desc.I64SummaryColumns)
	b.F64SummaryColumns = newF64SummaryColumns(desc.F64SummaryColumns)

	for _, auxDecl := range desc.AuxiliaryEntities {
		aux := batch.NewAuxiliaryEntity(auxDecl.ParentColumn, auxDecl.Kind)
		aux.I64Columns = newI64Columns(auxDecl.I64Columns)
		aux.F64Columns = newF64Columns(auxDecl.F64Columns)
		aux.StringColumns = newStringColumns(auxDecl.StringColumns)
		aux.BoolColumns = newBoolColumns(auxDecl.BoolColumns)
		aux.BytesColumns = newBytesColumns(auxDecl.BytesColumns)
		b.AuxiliaryEntities = append(b.AuxiliaryEntities, aux)
	}

	b.Reserve()
	return b, nil
}

func applyMeta(m *column.Meta, d ColumnDecl) {
	m.Name = d.Name
	m.LogicalType = d.LogicalType
	m.Unit = d.Unit
	m.Description = d.Description
	m.AggregationTemporality = d.AggTempo
	m.IsMonotonic = d.IsMonotonic
}

func newI64Columns(decls []ColumnDecl) []*column.I64Column {
	cols := make([]*column.I64Column, len(decls))
	for i, d := range decls {
		var c *column.I64Column
		if d.Optional {
			c = column.NewOptionalI64(d.Name)
		} else {
			c = column.NewI64(d.Name)
		}
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newF64Columns(decls []ColumnDecl) []*column.F64Column {
	cols := make([]*column.F64Column, len(decls))
	for i, d := range decls {
		var c *column.F64Column
		if d.Optional {
			c = column.NewOptionalF64(d.Name)
		} else {
			c = column.NewF64(d.Name)
		}
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newStringColumns(decls []ColumnDecl) []*column.StringColumn {
	cols := make([]*column.StringColumn, len(decls))
	for i, d := range decls {
		var c *column.StringColumn
		if d.Optional {
			c = column.NewOptionalString(d.Name)
		} else {
			c = column.NewString(d.Name)
		}
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newBoolColumns(decls []ColumnDecl) []*column.BoolColumn {
	cols := make([]*column.BoolColumn, len(decls))
	for i, d := range decls {
		var c *column.BoolColumn
		if d.Optional {
			c = column.NewOptionalBool(d.Name)
		} else {
			c = column.NewBool(d.Name)
		}
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newBytesColumns(decls []ColumnDecl) []*column.BytesColumn {
	cols := make([]*column.BytesColumn, len(decls))
	for i, d := range decls {
		var c *column.BytesColumn
		if d.Optional {
			c = column.NewOptionalBytes(d.Name)
		} else {
			c = column.NewBytes(d.Name)
		}
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newI64SummaryColumns(decls []ColumnDecl) []*column.I64SummaryColumn {
	cols := make([]*column.I64SummaryColumn, len(decls))
	for i, d := range decls {
		c := column.NewI64Summary(d.Name)
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}

func newF64SummaryColumns(decls []ColumnDecl) []*column.F64SummaryColumn {
	cols := make([]*column.F64SummaryColumn, len(decls))
	for i, d := range decls {
		c := column.NewF64Summary(d.Name)
		applyMeta(&c.Meta, d)
		cols[i] = c
	}
	return cols
}
