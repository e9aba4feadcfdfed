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

// Package wire implements the primary tag/value columnar wire format of
// spec.md §6: a length-delimited, field-numbered encoding for
// ResourceEvents. Field numbers and wire types below are pinned exactly as
// spec.md §6 lists them, so any conforming protobuf-style decoder would
// parse the same bytes; we build the encoder directly on
// google.golang.org/protobuf/encoding/protowire's varint/length-delimited
// primitives instead of generated .proto stubs, since generated stubs are
// explicitly outside this engine's line budget (spec.md §2) and no .proto
// sources were retrieved alongside the teacher.
package wire

// ResourceEvents field numbers.
const (
	fieldResource               = 1
	fieldInstrumentationLibrary = 2
	fieldResourceEventsSchema   = 3
)

// Resource field numbers.
const (
	fieldResourceAttributes   = 1
	fieldResourceDroppedAttrs = 2
)

// KeyValue field numbers (attribute entries; this engine's attributes are
// always string/string per spec.md §9).
const (
	fieldKeyValueKey   = 1
	fieldKeyValueValue = 2
)

// InstrumentationLibraryEvents field numbers.
const (
	fieldILELibrary      = 1
	fieldILEBatchEvent   = 2
	fieldILEDroppedCount = 3
)

// InstrumentationLibrary field numbers.
const (
	fieldLibraryName    = 1
	fieldLibraryVersion = 2
)

// BatchEvent field numbers, exactly as spec.md §6 enumerates them.
const (
	fieldBatchSchemaURL    = 1
	fieldBatchSize         = 2
	fieldBatchStartTimeCol = 3
	fieldBatchEndTimeCol   = 4
	fieldBatchI64Col       = 5
	fieldBatchF64Col       = 6
	fieldBatchStringCol    = 7
	fieldBatchBoolCol      = 8
	fieldBatchBytesCol     = 9
	fieldBatchI64SummCol   = 10
	fieldBatchF64SummCol   = 11
	fieldBatchAuxEntity    = 12
)

// Column (shared shape for I64/F64/String/Bool/Bytes columns).
const (
	fieldColName        = 1
	fieldColLogicalType = 2
	fieldColDescription = 3
	fieldColUnit        = 4
	fieldColAggTempo    = 5
	fieldColIsMonotonic = 6
	fieldColValues      = 7
	fieldColValidity    = 8
)

// SummaryColumn shape: shares the Column header fields 1-6, then repeated
// summary entries under field 7 and validity under field 8.
const (
	fieldSummaryColEntries  = 7
	fieldSummaryColValidity = 8
)

// SummaryEntry (one row of a summary column).
const (
	fieldSummaryCount     = 1
	fieldSummarySum       = 2
	fieldSummaryQuantiles = 3
)

// QuantileValue.
const (
	fieldQuantileQuantile = 1
	fieldQuantileValue    = 2
)

// AuxiliaryEntity field numbers.
const (
	fieldAuxParentColumn = 1
	fieldAuxLogicalType  = 2
	fieldAuxParentRanks  = 3
	fieldAuxI64Col       = 5
	fieldAuxF64Col       = 6
	fieldAuxStringCol    = 7
	fieldAuxBoolCol      = 8
	fieldAuxBytesCol     = 9
	fieldAuxI64SummCol   = 10
	fieldAuxF64SummCol   = 11
)
