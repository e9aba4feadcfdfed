package bitmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/columnar-telemetry/batchengine/pkg/bitmap"
)

func TestAllocateSize(t *testing.T) {
	assert.Len(t, bitmap.Allocate(0), 0)
	assert.Len(t, bitmap.Allocate(1), 1)
	assert.Len(t, bitmap.Allocate(8), 1)
	assert.Len(t, bitmap.Allocate(9), 2)
	assert.Len(t, bitmap.Allocate(64), 8)
}

func TestSetIsSet(t *testing.T) {
	b := bitmap.Allocate(10)
	assert.False(t, b.IsSet(0), "an allocated bitmap starts with every slot absent; only an empty bitmap defaults to valid")

	b.Set(0)
	b.Set(9)
	assert.True(t, b.IsSet(0))
	assert.True(t, b.IsSet(9))
	assert.False(t, b.IsSet(1))
	assert.False(t, b.IsSet(8))
}

func TestEmptyBitmapMeansNonNullable(t *testing.T) {
	var b bitmap.Bitmap
	assert.True(t, b.IsSet(0))
	assert.True(t, b.IsSet(1000))
}

func TestClear(t *testing.T) {
	b := bitmap.Allocate(8)
	b.Set(3)
	b.Clear(3)
	assert.False(t, b.IsSet(3))
}

func TestReset(t *testing.T) {
	b := bitmap.Allocate(16)
	b.Set(0)
	b.Set(15)
	b.Reset()
	for i := 0; i < 16; i++ {
		assert.False(t, b.IsSet(i))
	}
	assert.Len(t, b, 2, "reset preserves allocated capacity")
}

func TestGrow(t *testing.T) {
	b := bitmap.Allocate(4)
	b.Set(2)
	grown := bitmap.Grow(b, 20)
	assert.Len(t, grown, 3)
	assert.True(t, grown.IsSet(2))
	assert.False(t, grown.IsSet(19))
}
