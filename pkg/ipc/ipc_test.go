package ipc_test

import (
	"testing"

	"github.com/apache/arrow/go/v12/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/ipc"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
	"github.com/columnar-telemetry/batchengine/pkg/wire"
)

func buildResourceEvents(urn string, b *batch.Batch) *resourceevents.ResourceEvents {
	return &resourceevents.ResourceEvents{
		Resource: resourceevents.Resource{Attributes: map[string]string{}},
		InstrumentationLibrary: []resourceevents.InstrumentationLibraryEvents{
			{Batches: []resourceevents.BatchEvent{{SchemaURL: urn, Batch: b}}},
		},
		SchemaURL: urn,
	}
}

func TestRoundTripHTTPTransaction(t *testing.T) {
	desc := schema.HTTPTransactionDescriptor()
	b, err := schema.NewBatch(desc, 10)
	require.NoError(t, err)

	dur := 12.5
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "a", Port: 80, HTTPCode: 200}))
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "b", Port: 443, HTTPCode: 200, DurationMs: &dur}))

	pool := memory.NewGoAllocator()
	data, err := ipc.EncodeBatch(pool, desc, b)
	require.NoError(t, err)

	got, err := ipc.DecodeBatch(pool, desc, data)
	require.NoError(t, err)

	assert.Equal(t, 2, got.Size)
	assert.Equal(t, []string{"a", "b"}, got.StringColumns[0].Values)
	assert.Equal(t, []int64{80, 443}, got.I64Columns[0].Values)
	assert.Equal(t, []int64{200, 200}, got.I64Columns[1].Values)
	assert.False(t, got.F64Columns[0].IsValid(0))
	assert.True(t, got.F64Columns[0].IsValid(1))
	assert.Equal(t, 12.5, got.F64Columns[0].Values[1])
}

// TestRoundTripSumQuery mirrors spec.md §8 scenario 5 for the Arrow IPC
// encoding: a sum query over the decoded port column must match the sum
// computed directly on the original batch.
func TestRoundTripSumQuery(t *testing.T) {
	desc := schema.HTTPTransactionDescriptor()
	b, err := schema.NewBatch(desc, 10)
	require.NoError(t, err)

	var wantSum int64
	for i := 0; i < 5; i++ {
		port := int64(i * 10)
		require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "h", Port: port, HTTPCode: 200}))
		wantSum += port
	}

	pool := memory.NewGoAllocator()
	data, err := ipc.EncodeBatch(pool, desc, b)
	require.NoError(t, err)

	got, err := ipc.DecodeBatch(pool, desc, data)
	require.NoError(t, err)

	var gotSum int64
	for _, v := range got.I64Columns[0].Values {
		gotSum += v
	}
	assert.Equal(t, wantSum, gotSum)
}

func TestRoundTripJSONTraceWithAuxiliaryEntities(t *testing.T) {
	desc := schema.JSONTraceDescriptor()
	b, err := schema.NewBatch(desc, 10)
	require.NoError(t, err)

	require.NoError(t, schema.WriteJSONTrace(b, schema.JSONTraceEvent{
		TraceID:    []byte{1, 2},
		SpanID:     []byte{3, 4},
		Name:       "span-a",
		Attributes: map[string]string{"k2": "v2", "k1": "v1"},
		Events:     []schema.SpanEvent{{Name: "ev1", TimestampUnixNano: 100}},
		Links:      []schema.SpanLink{{TraceID: []byte{9}, SpanID: []byte{8}}},
	}))

	pool := memory.NewGoAllocator()
	data, err := ipc.EncodeBatch(pool, desc, b)
	require.NoError(t, err)

	got, err := ipc.DecodeBatch(pool, desc, data)
	require.NoError(t, err)

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

// TestWireAndIPCEncodingsAgree is the cross-encoding equivalence check the
// benchmark harness relies on: the same batch, pushed through both wire
// formats, must decode to the same logical content.
func TestWireAndIPCEncodingsAgree(t *testing.T) {
	desc := schema.HTTPTransactionDescriptor()
	b, err := schema.NewBatch(desc, 10)
	require.NoError(t, err)
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "a", Port: 80, HTTPCode: 200}))
	require.NoError(t, schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "b", Port: 443, HTTPCode: 404}))

	re := buildResourceEvents(desc.URN, b)
	wireDecoded, err := wire.DecodeResourceEvents(wire.EncodeResourceEvents(re))
	require.NoError(t, err)
	wireBatch := wireDecoded.InstrumentationLibrary[0].Batches[0].Batch

	pool := memory.NewGoAllocator()
	ipcData, err := ipc.EncodeBatch(pool, desc, b)
	require.NoError(t, err)
	ipcBatch, err := ipc.DecodeBatch(pool, desc, ipcData)
	require.NoError(t, err)

	assert.Equal(t, wireBatch.StringColumns[0].Values, ipcBatch.StringColumns[0].Values)
	assert.Equal(t, wireBatch.I64Columns[0].Values, ipcBatch.I64Columns[0].Values)
	assert.Equal(t, wireBatch.I64Columns[1].Values, ipcBatch.I64Columns[1].Values)
}
