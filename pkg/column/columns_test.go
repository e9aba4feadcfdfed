package column_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/columnar-telemetry/batchengine/pkg/column"
)

func TestI64OptionalValidity(t *testing.T) {
	c := column.NewOptionalI64("kind")
	c.AppendOptional(2, true)
	c.AppendOptional(0, false)

	assert.Equal(t, []int64{2, 0}, c.Values)
	assert.True(t, c.IsValid(0))
	assert.False(t, c.IsValid(1))
}

func TestI64NonNullableAlwaysValid(t *testing.T) {
	c := column.NewI64("port")
	c.Append(80)
	c.Append(443)
	assert.True(t, c.IsValid(0))
	assert.True(t, c.IsValid(1))
}

func TestStringReset(t *testing.T) {
	c := column.NewOptionalString("key")
	c.AppendOptional("v1", true)
	c.AppendOptional("", false)
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.IsValid(0), "reset zeroes the bitmap in place, so a cleared slot reads as absent")
}

func TestBytesColumn(t *testing.T) {
	c := column.NewBytes("trace_id")
	c.Append([]byte{1, 2, 3})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []byte{1, 2, 3}, c.Values[0])
}
