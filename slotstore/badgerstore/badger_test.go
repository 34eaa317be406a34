package badgerstore

import (
	"context"
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/hupe1980/seglist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Conformance(t *testing.T) {
	testutil.RunStoreConformance(t, newTestStore(t))
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	key := slotstore.KeyOf("slot-1")

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, "test", key, []byte("durable")))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Read(ctx, "test", key)
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), got)
}
