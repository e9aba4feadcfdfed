package handler_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/batchcfg"
	"github.com/columnar-telemetry/batchengine/pkg/handler"
	"github.com/columnar-telemetry/batchengine/pkg/resourceevents"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

func newHTTPHandler(t *testing.T, maxSize int, sink *bytes.Buffer) *handler.Handler {
	t.Helper()
	h, err := handler.New(
		schema.HTTPTransactionDescriptor(),
		batchcfg.BatchPolicy{MaxSize: maxSize},
		resourceevents.Resource{Attributes: map[string]string{}},
		resourceevents.InstrumentationLibrary{Name: "batchengine", Version: "0.1.0"},
		sink,
	)
	require.NoError(t, err)
	return h
}

func recordHTTP(h *handler.Handler, port int64) error {
	return h.Record(func(b *batch.Batch) error {
		return schema.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "h", Port: port, HTTPCode: 200})
	})
}

// TestEleventhRecordTriggersFlush mirrors spec.md §8 scenario 4: a
// ten-row-capacity batch flushes automatically on its eleventh record.
func TestEleventhRecordTriggersFlush(t *testing.T) {
	var sink bytes.Buffer
	h := newHTTPHandler(t, 10, &sink)

	for i := 0; i < 10; i++ {
		require.NoError(t, recordHTTP(h, int64(i)))
	}
	assert.Equal(t, 10, h.Batch().Size)
	assert.Equal(t, 0, sink.Len(), "no flush should have happened yet")

	require.NoError(t, recordHTTP(h, 10))
	assert.Equal(t, 1, h.Batch().Size, "the 11th record lands in a freshly flushed batch")
	assert.Greater(t, sink.Len(), 0, "the full batch should have been flushed to the sink")
}

func TestZeroCapacityPolicyReturnsCapacityError(t *testing.T) {
	h := newHTTPHandler(t, 0, nil)
	err := recordHTTP(h, 80)
	assert.ErrorIs(t, err, handler.ErrCapacity)
}

// TestSerializeDeserializeRoundTripSumQuery mirrors spec.md §8 scenario 5.
func TestSerializeDeserializeRoundTripSumQuery(t *testing.T) {
	h := newHTTPHandler(t, 10, nil)
	var wantSum int64
	for i := 0; i < 5; i++ {
		require.NoError(t, recordHTTP(h, int64(i*10)))
		wantSum += int64(i * 10)
	}

	data, err := h.Serialize()
	require.NoError(t, err)

	h2 := newHTTPHandler(t, 10, nil)
	require.NoError(t, h2.Deserialize(data))

	var gotSum int64
	for _, v := range h2.Batch().I64Columns[0].Values {
		gotSum += v
	}
	assert.Equal(t, wantSum, gotSum)
}

func TestDeserializeMalformedBufferReturnsDecodeError(t *testing.T) {
	h := newHTTPHandler(t, 10, nil)
	err := h.Deserialize([]byte{0xFF})
	assert.ErrorIs(t, err, handler.ErrDecode)
}

func TestResetBatchEventIsIdempotent(t *testing.T) {
	h := newHTTPHandler(t, 10, nil)
	require.NoError(t, recordHTTP(h, 80))
	h.ResetBatchEvent()
	h.ResetBatchEvent()
	assert.Equal(t, 0, h.Batch().Size)
}

func TestToJSONValueReflectsRecordedRows(t *testing.T) {
	h := newHTTPHandler(t, 10, nil)
	require.NoError(t, recordHTTP(h, 80))

	rows := h.ToJSONValue()
	require.Len(t, rows, 1)
	assert.Equal(t, schema.HTTPTransactionURN, rows[0]["@schema_url"])
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, assert.AnError }

func TestFlushSinkFailureReturnsIoError(t *testing.T) {
	h := newHTTPHandler(t, 10, nil)
	h.Sink = failingSink{}
	require.NoError(t, recordHTTP(h, 80))

	err := h.Flush()
	assert.ErrorIs(t, err, handler.ErrIo)
}
