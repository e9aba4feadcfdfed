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

import "google.golang.org/protobuf/encoding/protowire"

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBoolField(b []byte, num protowire.Number, v bool) []byte {
	if v {
		return appendVarintField(b, num, 1)
	}
	return appendVarintField(b, num, 0)
}

func appendStringField(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendMessageField wraps an already-encoded submessage payload in a
// length-delimited field. Used both for single embedded messages and for
// one element of a repeated message field (each repeated element carries
// its own tag, per protobuf's standard repeated-message encoding).
func appendMessageField(b []byte, num protowire.Number, payload []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, payload)
}

// appendPackedVarints encodes values as a single length-delimited field
// whose payload is the concatenation of their varint encodings, matching
// protobuf's "packed" representation for repeated numeric fields.
func appendPackedVarints(b []byte, num protowire.Number, values []uint64) []byte {
	var payload []byte
	for _, v := range values {
		payload = protowire.AppendVarint(payload, v)
	}
	return appendMessageField(b, num, payload)
}

// appendFixed64Field encodes v as a fixed64 field carrying the IEEE-754 bit
// pattern of a float64, used for the quantile (quantile, value) pairs.
func appendFixed64Field(b []byte, num protowire.Number, bits uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, bits)
}

// consumeField reads one (number, type, value-bytes, rest) tuple, where
// value-bytes is the raw encoded value (varint payload, or the inner bytes
// of a length-delimited field) and rest is what follows it in b.
type field struct {
	num protowire.Number
	typ protowire.Type
	buf []byte // for BytesType: inner payload. for VarintType/Fixed64Type: raw value re-encoded as varint/fixed bytes is not kept; use val instead.
	val uint64
}

func consumeField(b []byte) (f field, rest []byte, ok bool) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return field{}, nil, false
	}
	b = b[n:]
	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return field{}, nil, false
		}
		return field{num: num, typ: typ, val: v}, b[n:], true
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(b)
		if n < 0 {
			return field{}, nil, false
		}
		return field{num: num, typ: typ, val: v}, b[n:], true
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return field{}, nil, false
		}
		return field{num: num, typ: typ, val: uint64(v)}, b[n:], true
	case protowire.BytesType:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return field{}, nil, false
		}
		return field{num: num, typ: typ, buf: v}, b[n:], true
	default:
		n := protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return field{}, nil, false
		}
		return field{num: num, typ: typ}, b[n:], true
	}
}

func decodePackedVarints(payload []byte) []uint64 {
	var out []uint64
	for len(payload) > 0 {
		v, n := protowire.ConsumeVarint(payload)
		if n < 0 {
			break
		}
		out = append(out, v)
		payload = payload[n:]
	}
	return out
}
