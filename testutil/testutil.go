// Package testutil provides testing utilities for seglist.
//
// This package is intended for use in tests only. Its main entry point is
// RunStoreConformance, which exercises the slot semantics every
// slotstore.Store backend must share, so each backend's test suite checks
// the same contract.
package testutil

import (
	"context"
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreConformance runs the shared slot-semantics suite against store.
// The store must be empty; the suite writes into the "conformance-a" and
// "conformance-b" domains.
func RunStoreConformance(t *testing.T, store slotstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("MissingSlot", func(t *testing.T) {
		key := slotstore.KeyOf("missing")

		_, err := store.Read(ctx, "conformance-a", key)
		require.ErrorIs(t, err, slotstore.ErrNotFound)

		_, err = store.ReadAt(ctx, "conformance-a", key, 0, 8)
		require.ErrorIs(t, err, slotstore.ErrNotFound)
	})

	t.Run("WholeSlot", func(t *testing.T) {
		key := slotstore.KeyOf("whole")
		data := []byte("whole slot payload")

		require.NoError(t, store.Write(ctx, "conformance-a", key, data))

		got, err := store.Read(ctx, "conformance-a", key)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("SparseOffsetAccess", func(t *testing.T) {
		key := slotstore.KeyOf("sparse")

		// Offset writes create and zero-extend the slot.
		require.NoError(t, store.WriteAt(ctx, "conformance-a", key, 64, []byte{0xAA, 0xBB}))

		got, err := store.ReadAt(ctx, "conformance-a", key, 64, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xBB}, got)

		// The gap before the write reads as zeros.
		gap, err := store.ReadAt(ctx, "conformance-a", key, 0, 64)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 64), gap)

		// Reads past the written extent read as zeros.
		tail, err := store.ReadAt(ctx, "conformance-a", key, 128, 16)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 16), tail)

		// Overlapping writes land at their offsets.
		require.NoError(t, store.WriteAt(ctx, "conformance-a", key, 65, []byte{0xCC}))
		got, err = store.ReadAt(ctx, "conformance-a", key, 64, 2)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xCC}, got)
	})

	t.Run("DomainIsolation", func(t *testing.T) {
		key := slotstore.KeyOf("isolated")

		require.NoError(t, store.Write(ctx, "conformance-a", key, []byte("in a")))

		_, err := store.Read(ctx, "conformance-b", key)
		require.ErrorIs(t, err, slotstore.ErrNotFound)
	})

	t.Run("RangeChecks", func(t *testing.T) {
		key := slotstore.KeyOf("bounds")

		err := store.WriteAt(ctx, "conformance-a", key, slotstore.SlotSize, []byte{1})
		require.ErrorIs(t, err, slotstore.ErrOutOfRange)

		_, err = store.ReadAt(ctx, "conformance-a", key, -1, 4)
		require.ErrorIs(t, err, slotstore.ErrOutOfRange)

		err = store.Write(ctx, "conformance-a", key, make([]byte, slotstore.SlotSize+1))
		require.ErrorIs(t, err, slotstore.ErrOutOfRange)
	})
}
