package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
	"github.com/columnar-telemetry/batchengine/pkg/wire"
)

func buildHTTPResourceEvents(t *testing.T) *resourceevents.ResourceEvents {
	t.Helper()
	b, err := schema.NewBatch(schema.HTTPTransactionDescriptor(), 10)
	require.NoError(t, err)

	dur := 12.5
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "a", Port: 80, HTTPCode: 200}))
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "b", Port: 443, HTTPCode: 200, DurationMs: &dur}))

	return &resourceevents.ResourceEvents{
		Resource: resourceevents.Resource{Attributes: map[string]string{"service.name": "gateway"}},
		InstrumentationLibrary: []resourceevents.InstrumentationLibraryEvents{
			{
				Library: resourceevents.InstrumentationLibrary{Name: "batchengine", Version: "0.1.0"},
				Batches: []resourceevents.BatchEvent{{SchemaURL: schema.HTTPTransactionURN, Batch: b}},
			},
		},
		SchemaURL: schema.HTTPTransactionURN,
	}
}

func TestRoundTripHTTPTransaction(t *testing.T) {
	re := buildHTTPResourceEvents(t)

	encoded := wire.EncodeResourceEvents(re)
	decoded, err := wire.DecodeResourceEvents(encoded)
	require.NoError(t, err)

	assert.Equal(t, "gateway", decoded.Resource.Attributes["service.name"])
	assert.Equal(t, schema.HTTPTransactionURN, decoded.SchemaURL)
	require.Len(t, decoded.InstrumentationLibrary, 1)
	assert.Equal(t, "batchengine", decoded.InstrumentationLibrary[0].Library.Name)
	require.Len(t, decoded.InstrumentationLibrary[0].Batches, 1)

	got := decoded.InstrumentationLibrary[0].Batches[0].Batch
	assert.Equal(t, 2, got.Size)
	assert.Equal(t, []string{"a", "b"}, got.StringColumns[0].Values)
	assert.Equal(t, []int64{80, 443}, got.I64Columns[0].Values)
	assert.Equal(t, []int64{200, 200}, got.I64Columns[1].Values)
	assert.False(t, got.F64Columns[0].IsValid(0))
	assert.True(t, got.F64Columns[0].IsValid(1))
	assert.Equal(t, 12.5, got.F64Columns[0].Values[1])
}

// TestRoundTripSumQuery mirrors spec.md §8 scenario 5: encode, decode, then
// recompute a sum query over the decoded port column and check it matches
// the sum computed directly on the original batch.
func TestRoundTripSumQuery(t *testing.T) {
	re := buildHTTPResourceEvents(t)
	original := re.InstrumentationLibrary[0].Batches[0].Batch

	var wantSum int64
	for _, v := range original.I64Columns[0].Values {
		wantSum += v
	}

	decoded, err := wire.DecodeResourceEvents(wire.EncodeResourceEvents(re))
	require.NoError(t, err)

	got := decoded.InstrumentationLibrary[0].Batches[0].Batch
	var gotSum int64
	for _, v := range got.I64Columns[0].Values {
		gotSum += v
	}
	assert.Equal(t, wantSum, gotSum)
}

func TestRoundTripJSONTraceWithAuxiliaryEntities(t *testing.T) {
	b, err := schema.NewBatch(schema.JSONTraceDescriptor(), 10)
	require.NoError(t, err)

	require.NoError(t, schema.WriteJSONTrace(b, schema.JSONTraceEvent{
		TraceID:    []byte{1, 2},
		SpanID:     []byte{3, 4},
		Name:       "span-a",
		Attributes: map[string]string{"k2": "v2", "k1": "v1"},
		Events:     []schema.SpanEvent{{Name: "ev1", TimestampUnixNano: 100}},
		Links:      []schema.SpanLink{{TraceID: []byte{9}, SpanID: []byte{8}}},
	}))

	re := &resourceevents.ResourceEvents{
		Resource: resourceevents.Resource{Attributes: map[string]string{}},
		InstrumentationLibrary: []resourceevents.InstrumentationLibraryEvents{
			{Batches: []resourceevents.BatchEvent{{SchemaURL: schema.JSONTraceURN, Batch: b}}},
		},
		SchemaURL: schema.JSONTraceURN,
	}

	decoded, err := wire.DecodeResourceEvents(wire.EncodeResourceEvents(re))
	require.NoError(t, err)

	got := decoded.InstrumentationLibrary[0].Batches[0].Batch
	require.Len(t, got.AuxiliaryEntities, 3)

	attrs := got.AuxiliaryEntities[0]
	assert.Equal(t, 2, attrs.Size)
	assert.Equal(t, []uint32{0, 0}, attrs.ParentRanks)
	assert.Equal(t, []string{"k1", "k2"}, attrs.StringColumns[0].Values)

	events := got.AuxiliaryEntities[1]
	assert.Equal(t, "ev1", events.StringColumns[0].Values[0])
	assert.Equal(t, int64(100), events.I64Columns[0].Values[0])

	links := got.AuxiliaryEntities[2]
	assert.Equal(t, []byte{9}, links.BytesColumns[0].Values[0])
	assert.Equal(t, []byte{8}, links.BytesColumns[1].Values[0])

	assert.Equal(t, [][]byte{{1, 2}}, got.BytesColumns[0].Values)
	assert.False(t, got.I64Columns[0].IsValid(0))
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	re := buildHTTPResourceEvents(t)
	encoded := wire.EncodeResourceEvents(re)

	// Append a field number this decoder doesn't recognize at the top
	// level, simulating a newer writer; per spec.md §6 the decoder must
	// skip it rather than fail.
	unknown := protowire.AppendTag(nil, 99, protowire.VarintType)
	unknown = protowire.AppendVarint(unknown, 1)
	bogus := append(append([]byte(nil), encoded...), unknown...)

	decoded, err := wire.DecodeResourceEvents(bogus)
	require.NoError(t, err)
	assert.Equal(t, re.SchemaURL, decoded.SchemaURL)
}

func TestDecodeTruncatedBufferErrors(t *testing.T) {
	re := buildHTTPResourceEvents(t)
	encoded := wire.EncodeResourceEvents(re)

	_, err := wire.DecodeResourceEvents(encoded[:len(encoded)-1])
	assert.Error(t, err)
}
