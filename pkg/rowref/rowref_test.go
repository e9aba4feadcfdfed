package rowref_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/rowref"
	"github.com/columnar-telemetry/batchengine/pkg/schema"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := rowref.New(10)
	dur := 4.5
	require.NoError(t, rowref.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "a", Port: 80, HTTPCode: 200, DurationMs: &dur}))
	require.NoError(t, rowref.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "b", Port: 443, HTTPCode: 404}))

	data, err := rowref.Encode(b)
	require.NoError(t, err)

	decoded, err := rowref.Decode(data)
	require.NoError(t, err)
	require.Equal(t, 2, decoded.Size())

	rows := rowref.ToJSONValue(decoded, schema.HTTPTransactionURN)
	assert.Equal(t, "a", rows[0]["host"])
	assert.EqualValues(t, 80, rows[0]["port"])
	assert.EqualValues(t, 4.5, rows[0]["duration_ms"])
	assert.Equal(t, "b", rows[1]["host"])
	assert.Nil(t, rows[1]["duration_ms"])
}

func TestFullAndReset(t *testing.T) {
	b := rowref.New(1)
	require.NoError(t, rowref.WriteHTTPTransaction(b, schema.HTTPTransactionEvent{Host: "a", Port: 1, HTTPCode: 200}))
	assert.True(t, b.Full())
	b.Reset()
	assert.False(t, b.Full())
	assert.Equal(t, 0, b.Size())
}

// TestEquivalesColumnarBatch mirrors spec.md §8 scenario 6's equivalence
// check: the same event recorded into a columnar batch and into a rowref
// batch must project to the same logical JSON content.
func TestEquivalesColumnarBatch(t *testing.T) {
	desc := schema.HTTPTransactionDescriptor()
	colBatch, err := schema.NewBatch(desc, 10)
	require.NoError(t, err)

	ev := schema.HTTPTransactionEvent{Host: "gateway", Port: 8080, HTTPCode: 200}
	require.NoError(t, schema.WriteHTTPTransaction(colBatch, ev))

	rowBatch := rowref.New(10)
	require.NoError(t, rowref.WriteHTTPTransaction(rowBatch, ev))

	colRows := batch.ToJSONValue(colBatch, desc.URN)
	rowRows := rowref.ToJSONValue(rowBatch, desc.URN)

	require.Len(t, rowRows, 1)
	require.Len(t, colRows, 1)
	assert.Equal(t, colRows[0]["host"], rowRows[0]["host"])
	assert.EqualValues(t, colRows[0]["port"], rowRows[0]["port"])
	assert.EqualValues(t, colRows[0]["http_code"], rowRows[0]["http_code"])
}

func TestJSONTraceAuxiliaryRows(t *testing.T) {
	b := rowref.New(10)
	require.NoError(t, rowref.WriteJSONTrace(b, schema.JSONTraceEvent{
		TraceID:    []byte{1},
		SpanID:     []byte{2},
		Name:       "span-a",
		Attributes: map[string]string{"b": "2", "a": "1"},
		Events:     []schema.SpanEvent{{Name: "ev1", TimestampUnixNano: 100}},
	}))

	rows := rowref.ToJSONValue(b, schema.JSONTraceURN)
	require.Len(t, rows, 1)

	attrs := rows[0]["attributes"].([]map[string]interface{})
	require.Len(t, attrs, 2)
	assert.Equal(t, "a", attrs[0]["key"])
	assert.Equal(t, "b", attrs[1]["key"])

	events := rows[0]["events"].([]map[string]interface{})
	require.Len(t, events, 1)
	assert.Equal(t, "ev1", events[0]["name"])

	assert.Nil(t, rows[0]["links"])
}
