package codec

import (
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32(t *testing.T) {
	c := Uint32{}
	assert.Equal(t, uint32(1), c.Units())
	assert.Equal(t, slotstore.UnitSize, Size[uint32](c))

	raw, err := c.Marshal(0xDEADBEEF)
	require.NoError(t, err)
	require.Len(t, raw, slotstore.UnitSize)

	// Right-aligned in the unit: the leading bytes stay zero.
	assert.Equal(t, make([]byte, slotstore.UnitSize-4), raw[:slotstore.UnitSize-4])

	v, err := c.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)

	_, err = c.Unmarshal(raw[:8])
	require.Error(t, err)
}

func TestUint64(t *testing.T) {
	c := Uint64{}

	raw, err := c.Marshal(1 << 40)
	require.NoError(t, err)
	require.Len(t, raw, slotstore.UnitSize)

	v, err := c.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<40, v)
}

func TestKey(t *testing.T) {
	c := Key{}
	want := slotstore.KeyOf("nested-list")

	raw, err := c.Marshal(want)
	require.NoError(t, err)

	got, err := c.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRaw(t *testing.T) {
	c := NewRaw(2)
	assert.Equal(t, uint32(2), c.Units())

	block := make([]byte, 2*slotstore.UnitSize)
	block[0], block[63] = 0x01, 0xFF

	raw, err := c.Marshal(block)
	require.NoError(t, err)

	// Marshal copies; mutating the input must not alias the output.
	block[0] = 0x77
	assert.Equal(t, byte(0x01), raw[0])

	got, err := c.Unmarshal(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(0xFF), got[63])

	_, err = c.Marshal(make([]byte, slotstore.UnitSize))
	require.Error(t, err)
}
