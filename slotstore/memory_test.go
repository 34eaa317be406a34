package slotstore_test

import (
	"context"
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/hupe1980/seglist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Conformance(t *testing.T) {
	testutil.RunStoreConformance(t, slotstore.NewMemory())
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := slotstore.NewMemory()
	key := slotstore.KeyOf("slot-1")

	data := []byte("hello slot")
	require.NoError(t, store.Write(ctx, "test", key, data))

	// Mutating the returned slice must not affect the stored slot.
	got, err := store.Read(ctx, "test", key)
	require.NoError(t, err)
	got[0] = 'X'

	again, err := store.Read(ctx, "test", key)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	// Neither must mutating the caller's input after a write.
	input := []byte("aaaa")
	require.NoError(t, store.Write(ctx, "test", key, input))
	input[0] = 'z'

	got, err = store.Read(ctx, "test", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("aaaa"), got)
}

func TestMemory_Len(t *testing.T) {
	ctx := context.Background()
	store := slotstore.NewMemory()

	require.NoError(t, store.Write(ctx, "test", slotstore.KeyOf("a"), []byte{1}))
	require.NoError(t, store.Write(ctx, "test", slotstore.KeyOf("b"), []byte{2}))
	require.NoError(t, store.Write(ctx, "other", slotstore.KeyOf("a"), []byte{3}))

	assert.Equal(t, 2, store.Len("test"))
	assert.Equal(t, 1, store.Len("other"))
	assert.Equal(t, 0, store.Len("empty"))
}
