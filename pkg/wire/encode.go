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

package wire

import (
	"math"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/column"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
)

// EncodeResourceEvents serializes re into the tag/value columnar wire
// format of spec.md §6. Inputs are produced entirely by this engine's own
// batch and schema packages, whose invariants (non-decreasing parent_ranks,
// equal-length column vectors) already hold by construction, so encoding
// itself has no failure mode; handler wraps this with its ErrEncode sentinel
// only to uniformly report panics recovered at its own boundary.
func EncodeResourceEvents(re *resourceevents.ResourceEvents) []byte {
	var b []byte
	b = appendMessageField(b, fieldResource, encodeResource(re.Resource))
	for _, ile := range re.InstrumentationLibrary {
		b = appendMessageField(b, fieldInstrumentationLibrary, encodeInstrumentationLibraryEvents(ile))
	}
	b = appendStringField(b, fieldResourceEventsSchema, re.SchemaURL)
	return b
}

func encodeResource(r resourceevents.Resource) []byte {
	var b []byte
	keys := make([]string, 0, len(r.Attributes))
	for k := range r.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b = appendMessageField(b, fieldResourceAttributes, encodeKeyValue(k, r.Attributes[k]))
	}
	b = appendVarintField(b, fieldResourceDroppedAttrs, uint64(r.DroppedAttributesCount))
	return b
}

func encodeKeyValue(key, value string) []byte {
	var b []byte
	b = appendStringField(b, fieldKeyValueKey, key)
	b = appendStringField(b, fieldKeyValueValue, value)
	return b
}

func encodeInstrumentationLibraryEvents(ile resourceevents.InstrumentationLibraryEvents) []byte {
	var b []byte
	b = appendMessageField(b, fieldILELibrary, encodeInstrumentationLibrary(ile.Library))
	for _, be := range ile.Batches {
		b = appendMessageField(b, fieldILEBatchEvent, encodeBatchEvent(be))
	}
	b = appendVarintField(b, fieldILEDroppedCount, uint64(ile.DroppedEventsCount))
	return b
}

func encodeInstrumentationLibrary(lib resourceevents.InstrumentationLibrary) []byte {
	var b []byte
	b = appendStringField(b, fieldLibraryName, lib.Name)
	b = appendStringField(b, fieldLibraryVersion, lib.Version)
	return b
}

// encodeBatchEvent flattens one BatchEvent's schema URL, size, time columns,
// every declared typed-column vector, and every auxiliary entity.
func encodeBatchEvent(be resourceevents.BatchEvent) []byte {
	var b []byte
	b = appendStringField(b, fieldBatchSchemaURL, be.SchemaURL)

	bt := be.Batch
	b = appendVarintField(b, fieldBatchSize, uint64(bt.Size))
	b = appendPackedVarints(b, fieldBatchStartTimeCol, bt.StartTimeUnixNano)
	b = appendPackedVarints(b, fieldBatchEndTimeCol, bt.EndTimeUnixNano)

	for _, c := range bt.I64Columns {
		b = appendMessageField(b, fieldBatchI64Col, encodeI64Column(c))
	}
	for _, c := range bt.F64Columns {
		b = appendMessageField(b, fieldBatchF64Col, encodeF64Column(c))
	}
	for _, c := range bt.StringColumns {
		b = appendMessageField(b, fieldBatchStringCol, encodeStringColumn(c))
	}
	for _, c := range bt.BoolColumns {
		b = appendMessageField(b, fieldBatchBoolCol, encodeBoolColumn(c))
	}
	for _, c := range bt.BytesColumns {
		b = appendMessageField(b, fieldBatchBytesCol, encodeBytesColumn(c))
	}
	for _, c := range bt.I64SummaryColumns {
		b = appendMessageField(b, fieldBatchI64SummCol, encodeI64SummaryColumn(c))
	}
	for _, c := range bt.F64SummaryColumns {
		b = appendMessageField(b, fieldBatchF64SummCol, encodeF64SummaryColumn(c))
	}
	for _, aux := range bt.AuxiliaryEntities {
		b = appendMessageField(b, fieldBatchAuxEntity, encodeAuxiliaryEntity(aux))
	}
	return b
}

func encodeColumnHeader(b []byte, m column.Meta) []byte {
	b = appendStringField(b, fieldColName, m.Name)
	b = appendVarintField(b, fieldColLogicalType, uint64(m.LogicalType))
	b = appendStringField(b, fieldColDescription, m.Description)
	b = appendStringField(b, fieldColUnit, m.Unit)
	b = appendVarintField(b, fieldColAggTempo, uint64(m.AggregationTemporality))
	b = appendBoolField(b, fieldColIsMonotonic, m.IsMonotonic)
	return b
}

func encodeI64Column(c *column.I64Column) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	vals := make([]uint64, len(c.Values))
	for i, v := range c.Values {
		vals[i] = protowire.EncodeZigZag(v)
	}
	b = appendPackedVarints(b, fieldColValues, vals)
	b = appendBytesField(b, fieldColValidity, c.Validity)
	return b
}

func encodeF64Column(c *column.F64Column) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	vals := make([]uint64, len(c.Values))
	for i, v := range c.Values {
		vals[i] = math.Float64bits(v)
	}
	b = appendPackedVarints(b, fieldColValues, vals)
	b = appendBytesField(b, fieldColValidity, c.Validity)
	return b
}

func encodeStringColumn(c *column.StringColumn) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	for _, v := range c.Values {
		b = appendStringField(b, fieldColValues, v)
	}
	b = appendBytesField(b, fieldColValidity, c.Validity)
	return b
}

func encodeBoolColumn(c *column.BoolColumn) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	vals := make([]uint64, len(c.Values))
	for i, v := range c.Values {
		if v {
			vals[i] = 1
		}
	}
	b = appendPackedVarints(b, fieldColValues, vals)
	b = appendBytesField(b, fieldColValidity, c.Validity)
	return b
}

func encodeBytesColumn(c *column.BytesColumn) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	for _, v := range c.Values {
		b = appendBytesField(b, fieldColValues, v)
	}
	b = appendBytesField(b, fieldColValidity, c.Validity)
	return b
}

func encodeQuantiles(qs []column.QuantileValue) []byte {
	var b []byte
	for _, q := range qs {
		var entry []byte
		entry = appendFixed64Field(entry, fieldQuantileQuantile, math.Float64bits(q.Quantile))
		entry = appendFixed64Field(entry, fieldQuantileValue, math.Float64bits(q.Value))
		b = appendMessageField(b, fieldSummaryQuantiles, entry)
	}
	return b
}

func encodeI64SummaryColumn(c *column.I64SummaryColumn) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	for i := 0; i < c.Len(); i++ {
		var entry []byte
		entry = appendVarintField(entry, fieldSummaryCount, c.Count[i])
		entry = appendVarintField(entry, fieldSummarySum, protowire.EncodeZigZag(c.Sum[i]))
		entry = append(entry, encodeQuantiles(c.Quantiles[i])...)
		b = appendMessageField(b, fieldSummaryColEntries, entry)
	}
	b = appendBytesField(b, fieldSummaryColValidity, c.Validity)
	return b
}

func encodeF64SummaryColumn(c *column.F64SummaryColumn) []byte {
	var b []byte
	b = encodeColumnHeader(b, c.Meta)
	for i := 0; i < c.Len(); i++ {
		var entry []byte
		entry = appendVarintField(entry, fieldSummaryCount, c.Count[i])
		entry = appendFixed64Field(entry, fieldSummarySum, math.Float64bits(c.Sum[i]))
		entry = append(entry, encodeQuantiles(c.Quantiles[i])...)
		b = appendMessageField(b, fieldSummaryColEntries, entry)
	}
	b = appendBytesField(b, fieldSummaryColValidity, c.Validity)
	return b
}

func encodeAuxiliaryEntity(a *batch.AuxiliaryEntity) []byte {
	var b []byte
	b = appendStringField(b, fieldAuxParentColumn, a.ParentColumn)
	b = appendVarintField(b, fieldAuxLogicalType, uint64(a.LogicalType))
	ranks := make([]uint64, len(a.ParentRanks))
	for i, r := range a.ParentRanks {
		ranks[i] = uint64(r)
	}
	b = appendPackedVarints(b, fieldAuxParentRanks, ranks)

	for _, c := range a.I64Columns {
		b = appendMessageField(b, fieldAuxI64Col, encodeI64Column(c))
	}
	for _, c := range a.F64Columns {
		b = appendMessageField(b, fieldAuxF64Col, encodeF64Column(c))
	}
	for _, c := range a.StringColumns {
		b = appendMessageField(b, fieldAuxStringCol, encodeStringColumn(c))
	}
	for _, c := range a.BoolColumns {
		b = appendMessageField(b, fieldAuxBoolCol, encodeBoolColumn(c))
	}
	for _, c := range a.BytesColumns {
		b = appendMessageField(b, fieldAuxBytesCol, encodeBytesColumn(c))
	}
	for _, c := range a.I64SummaryColumns {
		b = appendMessageField(b, fieldAuxI64SummCol, encodeI64SummaryColumn(c))
	}
	for _, c := range a.F64SummaryColumns {
		b = appendMessageField(b, fieldAuxF64SummCol, encodeF64SummaryColumn(c))
	}
	return b
}
