package slotstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/seglist/slotstore"
	"github.com/hupe1980/seglist/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Conformance(t *testing.T) {
	for _, compression := range []string{"none", "zstd", "lz4"} {
		t.Run(compression, func(t *testing.T) {
			store, err := slotstore.NewLocal(t.TempDir(), slotstore.WithCompression(compression))
			require.NoError(t, err)
			testutil.RunStoreConformance(t, store)
		})
	}
}

func TestLocal_FileLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := slotstore.NewLocal(root)
	require.NoError(t, err)

	key := slotstore.KeyOf("slot-1")
	require.NoError(t, store.Write(ctx, "test", key, []byte("payload")))

	// One file per slot under root/domain/hexkey.
	_, err = os.Stat(filepath.Join(root, "test", key.String()))
	require.NoError(t, err)
}

func TestLocal_CompressionRoundTrip(t *testing.T) {
	ctx := context.Background()
	key := slotstore.KeyOf("slot-1")
	data := []byte("compressible compressible compressible compressible")

	for _, name := range []string{"zstd", "lz4"} {
		t.Run(name, func(t *testing.T) {
			store, err := slotstore.NewLocal(t.TempDir(), slotstore.WithCompression(name))
			require.NoError(t, err)

			require.NoError(t, store.Write(ctx, "test", key, data))
			got, err := store.Read(ctx, "test", key)
			require.NoError(t, err)
			assert.Equal(t, data, got)

			// Offset writes survive the decompress/modify/recompress cycle.
			require.NoError(t, store.WriteAt(ctx, "test", key, 4, []byte("XXXX")))
			got, err = store.ReadAt(ctx, "test", key, 4, 4)
			require.NoError(t, err)
			assert.Equal(t, []byte("XXXX"), got)
		})
	}
}

func TestLocal_UnknownCompression(t *testing.T) {
	_, err := slotstore.NewLocal(t.TempDir(), slotstore.WithCompression("brotli"))
	require.Error(t, err)
}
