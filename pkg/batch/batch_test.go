package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/columnar-telemetry/batchengine/pkg/batch"
	"github.com/columnar-telemetry/batchengine/pkg/column"
)

// buildHTTPBatch mirrors spec.md §8 scenario 1: host/port/http_code columns,
// one row per event, no auxiliary entities.
func buildHTTPBatch(t *testing.T) *batch.Batch {
	t.Helper()
	b := batch.New(10)
	b.StringColumns = []*column.StringColumn{column.NewString("host")}
	b.I64Columns = []*column.I64Column{column.NewI64("port"), column.NewI64("http_code")}
	b.Reserve()

	events := []struct {
		host string
		port int64
		code int64
	}{
		{"a", 80, 200},
		{"b", 443, 200},
		{"c", 8080, 200},
	}
	for _, e := range events {
		b.BeginRow(0, 0)
		b.StringColumns[0].Append(e.host)
		b.I64Columns[0].Append(e.port)
		b.I64Columns[1].Append(e.code)
	}
	return b
}

func TestHTTPTransactionScenario(t *testing.T) {
	b := buildHTTPBatch(t)
	assert.Equal(t, 3, b.Size)
	assert.Equal(t, []string{"a", "b", "c"}, b.StringColumns[0].Values)
	assert.Equal(t, []int64{80, 443, 8080}, b.I64Columns[0].Values)
}

// TestOptionalColumnScenario mirrors spec.md §8 scenario 2: kind=Some(2),
// kind=None.
func TestOptionalColumnScenario(t *testing.T) {
	b := batch.New(10)
	b.I64Columns = []*column.I64Column{column.NewOptionalI64("kind")}
	b.Reserve()

	b.BeginRow(0, 0)
	b.I64Columns[0].AppendOptional(2, true)
	b.BeginRow(0, 0)
	b.I64Columns[0].AppendOptional(0, false)

	assert.Equal(t, []int64{2, 0}, b.I64Columns[0].Values)
	assert.True(t, b.I64Columns[0].IsValid(0))
	assert.False(t, b.I64Columns[0].IsValid(1))
}

// TestAuxiliaryEntityScenario mirrors spec.md §8 scenario 3: one trace with
// attributes k1=v1, k2=v2.
func TestAuxiliaryEntityScenario(t *testing.T) {
	b := batch.New(10)
	b.BytesColumns = []*column.BytesColumn{column.NewBytes("trace_id")}
	aux := batch.NewAuxiliaryEntity("attributes", batch.AuxAttribute)
	aux.StringColumns = []*column.StringColumn{column.NewString("key"), column.NewString("value")}
	b.AuxiliaryEntities = []*batch.AuxiliaryEntity{aux}
	b.Reserve()

	row := b.BeginRow(0, 0)
	b.BytesColumns[0].Append([]byte{0xAA})

	for _, kv := range [][2]string{{"k1", "v1"}, {"k2", "v2"}} {
		aux.AppendChild(row)
		aux.StringColumns[0].Append(kv[0])
		aux.StringColumns[1].Append(kv[1])
	}

	assert.Equal(t, 2, aux.Size)
	assert.Equal(t, []uint32{0, 0}, aux.ParentRanks)
	assert.Equal(t, []string{"k1", "k2"}, aux.StringColumns[0].Values)
}

func TestResetIsIdempotentAndPreservesCapacity(t *testing.T) {
	b := buildHTTPBatch(t)
	cap0 := cap(b.StringColumns[0].Values)

	b.Reset()
	assert.Equal(t, 0, b.Size)
	assert.Equal(t, 0, b.StringColumns[0].Len())
	assert.Equal(t, cap0, cap(b.StringColumns[0].Values), "reset keeps the backing array allocated")

	b.Reset() // idempotent
	assert.Equal(t, 0, b.Size)
}

func TestToJSONValueEmptyBatch(t *testing.T) {
	b := batch.New(4)
	assert.Equal(t, []map[string]interface{}{}, batch.ToJSONValue(b, "urn:test"))
}

func TestToJSONValueWithAuxiliaryEntity(t *testing.T) {
	b := batch.New(10)
	b.StringColumns = []*column.StringColumn{column.NewString("name")}
	aux := batch.NewAuxiliaryEntity("attributes", batch.AuxAttribute)
	aux.StringColumns = []*column.StringColumn{column.NewString("key"), column.NewString("value")}
	b.AuxiliaryEntities = []*batch.AuxiliaryEntity{aux}
	b.Reserve()

	row0 := b.BeginRow(1, 2)
	b.StringColumns[0].Append("span-a")
	aux.AppendChild(row0)
	aux.StringColumns[0].Append("k1")
	aux.StringColumns[1].Append("v1")

	row1 := b.BeginRow(3, 4)
	b.StringColumns[0].Append("span-b")
	_ = row1 // no attributes for this row

	rows := batch.ToJSONValue(b, "urn:trace")
	assert.Len(t, rows, 2)
	assert.Equal(t, "span-a", rows[0]["name"])
	assert.Equal(t, uint64(1), rows[0]["@start_time_unix_nano"])

	attrs, ok := rows[0]["attributes"].([]map[string]interface{})
	assert.True(t, ok)
	assert.Len(t, attrs, 1)
	assert.Equal(t, "k1", attrs[0]["key"])

	_, hasAttrs := rows[1]["attributes"]
	assert.False(t, hasAttrs, "a parent row with no children yields no key")
}
