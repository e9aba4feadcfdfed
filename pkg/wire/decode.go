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
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/bitmap"
	"github.com/columnar-telemetry/batchengine/pkg/column"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
)

// ErrTruncated is returned when a buffer ends in the middle of a tag,
// varint, or length-delimited value.
var ErrTruncated = errors.New("wire: truncated message")

// parseMessage walks buf field by field, invoking visit for each one. Per
// spec.md §6's bit-exact compatibility requirement, unrecognized field
// numbers are silently skipped rather than rejected, so this engine can add
// fields later without breaking older readers.
func parseMessage(buf []byte, visit func(f field) error) error {
	for len(buf) > 0 {
		f, rest, ok := consumeField(buf)
		if !ok {
			return ErrTruncated
		}
		if err := visit(f); err != nil {
			return err
		}
		buf = rest
	}
	return nil
}

// DecodeResourceEvents parses the tag/value columnar wire format of
// spec.md §6 back into a ResourceEvents tree. Unknown field numbers at any
// nesting level are ignored, not rejected.
func DecodeResourceEvents(data []byte) (*resourceevents.ResourceEvents, error) {
	re := &resourceevents.ResourceEvents{}
	err := parseMessage(data, func(f field) error {
		switch f.num {
		case fieldResource:
			res, err := decodeResource(f.buf)
			if err != nil {
				return err
			}
			re.Resource = res
		case fieldInstrumentationLibrary:
			ile, err := decodeInstrumentationLibraryEvents(f.buf)
			if err != nil {
				return err
			}
			re.InstrumentationLibrary = append(re.InstrumentationLibrary, ile)
		case fieldResourceEventsSchema:
			re.SchemaURL = string(f.buf)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return re, nil
}

func decodeResource(buf []byte) (resourceevents.Resource, error) {
	r := resourceevents.Resource{Attributes: map[string]string{}}
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldResourceAttributes:
			key, value, err := decodeKeyValue(f.buf)
			if err != nil {
				return err
			}
			r.Attributes[key] = value
		case fieldResourceDroppedAttrs:
			r.DroppedAttributesCount = uint32(f.val)
		}
		return nil
	})
	return r, err
}

func decodeKeyValue(buf []byte) (key, value string, err error) {
	err = parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldKeyValueKey:
			key = string(f.buf)
		case fieldKeyValueValue:
			value = string(f.buf)
		}
		return nil
	})
	return key, value, err
}

func decodeInstrumentationLibraryEvents(buf []byte) (resourceevents.InstrumentationLibraryEvents, error) {
	ile := resourceevents.InstrumentationLibraryEvents{}
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldILELibrary:
			lib, err := decodeInstrumentationLibrary(f.buf)
			if err != nil {
				return err
			}
			ile.Library = lib
		case fieldILEBatchEvent:
			be, err := decodeBatchEvent(f.buf)
			if err != nil {
				return err
			}
			ile.Batches = append(ile.Batches, be)
		case fieldILEDroppedCount:
			ile.DroppedEventsCount = uint32(f.val)
		}
		return nil
	})
	return ile, err
}

func decodeInstrumentationLibrary(buf []byte) (resourceevents.InstrumentationLibrary, error) {
	lib := resourceevents.InstrumentationLibrary{}
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldLibraryName:
			lib.Name = string(f.buf)
		case fieldLibraryVersion:
			lib.Version = string(f.buf)
		}
		return nil
	})
	return lib, err
}

func decodeBatchEvent(buf []byte) (resourceevents.BatchEvent, error) {
	be := resourceevents.BatchEvent{}
	var size uint64
	bt := &batch.Batch{}
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldBatchSchemaURL:
			be.SchemaURL = string(f.buf)
		case fieldBatchSize:
			size = f.val
		case fieldBatchStartTimeCol:
			bt.StartTimeUnixNano = decodePackedVarints(f.buf)
		case fieldBatchEndTimeCol:
			bt.EndTimeUnixNano = decodePackedVarints(f.buf)
		case fieldBatchI64Col:
			c, err := decodeI64Column(f.buf)
			if err != nil {
				return err
			}
			bt.I64Columns = append(bt.I64Columns, c)
		case fieldBatchF64Col:
			c, err := decodeF64Column(f.buf)
			if err != nil {
				return err
			}
			bt.F64Columns = append(bt.F64Columns, c)
		case fieldBatchStringCol:
			c, err := decodeStringColumn(f.buf)
			if err != nil {
				return err
			}
			bt.StringColumns = append(bt.StringColumns, c)
		case fieldBatchBoolCol:
			c, err := decodeBoolColumn(f.buf)
			if err != nil {
				return err
			}
			bt.BoolColumns = append(bt.BoolColumns, c)
		case fieldBatchBytesCol:
			c, err := decodeBytesColumn(f.buf)
			if err != nil {
				return err
			}
			bt.BytesColumns = append(bt.BytesColumns, c)
		case fieldBatchI64SummCol:
			c, err := decodeI64SummaryColumn(f.buf)
			if err != nil {
				return err
			}
			bt.I64SummaryColumns = append(bt.I64SummaryColumns, c)
		case fieldBatchF64SummCol:
			c, err := decodeF64SummaryColumn(f.buf)
			if err != nil {
				return err
			}
			bt.F64SummaryColumns = append(bt.F64SummaryColumns, c)
		case fieldBatchAuxEntity:
			aux, err := decodeAuxiliaryEntity(f.buf)
			if err != nil {
				return err
			}
			bt.AuxiliaryEntities = append(bt.AuxiliaryEntities, aux)
		}
		return nil
	})
	if err != nil {
		return resourceevents.BatchEvent{}, err
	}
	bt.Size = int(size)
	bt.MaxSize = int(size)
	be.Batch = bt
	return be, nil
}

// decodeColumnHeader parses the shared Column header (name, logical type,
// description, unit, aggregation temporality, is_monotonic) plus the
// validity bitmap. Values (field 7) are kind-specific and decoded
// separately by each decodeXxxColumn function.
func decodeColumnHeader(buf []byte) (column.Meta, []byte, error) {
	var m column.Meta
	var validity []byte
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldColName:
			m.Name = string(f.buf)
		case fieldColLogicalType:
			m.LogicalType = column.MetricKind(f.val)
		case fieldColDescription:
			m.Description = string(f.buf)
		case fieldColUnit:
			m.Unit = string(f.buf)
		case fieldColAggTempo:
			m.AggregationTemporality = column.AggregationTemporality(f.val)
		case fieldColIsMonotonic:
			m.IsMonotonic = f.val != 0
		case fieldColValidity:
			validity = f.buf
		}
		return nil
	})
	return m, validity, err
}

func decodeI64Column(buf []byte) (*column.I64Column, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	var values []int64
	err = parseMessage(buf, func(f field) error {
		if f.num == fieldColValues && f.typ == protowire.BytesType {
			for _, zz := range decodePackedVarints(f.buf) {
				values = append(values, protowire.DecodeZigZag(zz))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column.I64Column{Meta: m, Optional: len(validity) > 0, Values: values, Validity: bitmap.Bitmap(validity)}, nil
}

func decodeF64Column(buf []byte) (*column.F64Column, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	var values []float64
	err = parseMessage(buf, func(f field) error {
		if f.num == fieldColValues && f.typ == protowire.BytesType {
			for _, bits := range decodePackedVarints(f.buf) {
				values = append(values, math.Float64frombits(bits))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column.F64Column{Meta: m, Optional: len(validity) > 0, Values: values, Validity: bitmap.Bitmap(validity)}, nil
}

func decodeStringColumn(buf []byte) (*column.StringColumn, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	var values []string
	err = parseMessage(buf, func(f field) error {
		if f.num == fieldColValues && f.typ == protowire.BytesType {
			values = append(values, string(f.buf))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column.StringColumn{Meta: m, Optional: len(validity) > 0, Values: values, Validity: bitmap.Bitmap(validity)}, nil
}

func decodeBoolColumn(buf []byte) (*column.BoolColumn, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	var values []bool
	err = parseMessage(buf, func(f field) error {
		if f.num == fieldColValues && f.typ == protowire.BytesType {
			for _, v := range decodePackedVarints(f.buf) {
				values = append(values, v != 0)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column.BoolColumn{Meta: m, Optional: len(validity) > 0, Values: values, Validity: bitmap.Bitmap(validity)}, nil
}

func decodeBytesColumn(buf []byte) (*column.BytesColumn, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	var values [][]byte
	err = parseMessage(buf, func(f field) error {
		if f.num == fieldColValues && f.typ == protowire.BytesType {
			values = append(values, append([]byte(nil), f.buf...))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column.BytesColumn{Meta: m, Optional: len(validity) > 0, Values: values, Validity: bitmap.Bitmap(validity)}, nil
}

func decodeQuantiles(buf []byte) ([]column.QuantileValue, error) {
	var qs []column.QuantileValue
	err := parseMessage(buf, func(f field) error {
		if f.num != fieldSummaryQuantiles {
			return nil
		}
		var q column.QuantileValue
		if err := parseMessage(f.buf, func(inner field) error {
			switch inner.num {
			case fieldQuantileQuantile:
				q.Quantile = math.Float64frombits(inner.val)
			case fieldQuantileValue:
				q.Value = math.Float64frombits(inner.val)
			}
			return nil
		}); err != nil {
			return err
		}
		qs = append(qs, q)
		return nil
	})
	return qs, err
}

func decodeI64SummaryColumn(buf []byte) (*column.I64SummaryColumn, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	c := &column.I64SummaryColumn{Meta: m, Optional: len(validity) > 0, Validity: bitmap.Bitmap(validity)}
	err = parseMessage(buf, func(f field) error {
		if f.num != fieldSummaryColEntries {
			return nil
		}
		var count uint64
		var sum int64
		var quantiles []column.QuantileValue
		if err := parseMessage(f.buf, func(inner field) error {
			switch inner.num {
			case fieldSummaryCount:
				count = inner.val
			case fieldSummarySum:
				sum = protowire.DecodeZigZag(inner.val)
			case fieldSummaryQuantiles:
				qs, err := decodeQuantiles(appendMessageField(nil, fieldSummaryQuantiles, inner.buf))
				if err != nil {
					return err
				}
				quantiles = append(quantiles, qs...)
			}
			return nil
		}); err != nil {
			return err
		}
		c.Append(count, sum, quantiles)
		return nil
	})
	return c, err
}

func decodeF64SummaryColumn(buf []byte) (*column.F64SummaryColumn, error) {
	m, validity, err := decodeColumnHeader(buf)
	if err != nil {
		return nil, err
	}
	c := &column.F64SummaryColumn{Meta: m, Optional: len(validity) > 0, Validity: bitmap.Bitmap(validity)}
	err = parseMessage(buf, func(f field) error {
		if f.num != fieldSummaryColEntries {
			return nil
		}
		var count uint64
		var sum float64
		var quantiles []column.QuantileValue
		if err := parseMessage(f.buf, func(inner field) error {
			switch inner.num {
			case fieldSummaryCount:
				count = inner.val
			case fieldSummarySum:
				sum = math.Float64frombits(inner.val)
			case fieldSummaryQuantiles:
				qs, err := decodeQuantiles(appendMessageField(nil, fieldSummaryQuantiles, inner.buf))
				if err != nil {
					return err
				}
				quantiles = append(quantiles, qs...)
			}
			return nil
		}); err != nil {
			return err
		}
		c.Append(count, sum, quantiles)
		return nil
	})
	return c, err
}

func decodeAuxiliaryEntity(buf []byte) (*batch.AuxiliaryEntity, error) {
	a := &batch.AuxiliaryEntity{}
	err := parseMessage(buf, func(f field) error {
		switch f.num {
		case fieldAuxParentColumn:
			a.ParentColumn = string(f.buf)
		case fieldAuxLogicalType:
			a.LogicalType = batch.AuxKind(f.val)
		case fieldAuxParentRanks:
			for _, v := range decodePackedVarints(f.buf) {
				a.ParentRanks = append(a.ParentRanks, uint32(v))
			}
			a.Size = len(a.ParentRanks)
		case fieldAuxI64Col:
			c, err := decodeI64Column(f.buf)
			if err != nil {
				return err
			}
			a.I64Columns = append(a.I64Columns, c)
		case fieldAuxF64Col:
			c, err := decodeF64Column(f.buf)
			if err != nil {
				return err
			}
			a.F64Columns = append(a.F64Columns, c)
		case fieldAuxStringCol:
			c, err := decodeStringColumn(f.buf)
			if err != nil {
				return err
			}
			a.StringColumns = append(a.StringColumns, c)
		case fieldAuxBoolCol:
			c, err := decodeBoolColumn(f.buf)
			if err != nil {
				return err
			}
			a.BoolColumns = append(a.BoolColumns, c)
		case fieldAuxBytesCol:
			c, err := decodeBytesColumn(f.buf)
			if err != nil {
				return err
			}
			a.BytesColumns = append(a.BytesColumns, c)
		case fieldAuxI64SummCol:
			c, err := decodeI64SummaryColumn(f.buf)
			if err != nil {
				return err
			}
			a.I64SummaryColumns = append(a.I64SummaryColumns, c)
		case fieldAuxF64SummCol:
			c, err := decodeF64SummaryColumn(f.buf)
			if err != nil {
				return err
			}
			a.F64SummaryColumns = append(a.F64SummaryColumns, c)
		}
		return nil
	})
	return a, err
}
