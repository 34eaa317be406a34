package s3

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/seglist/slotstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	client := s3.NewFromConfig(cfg)

	// Unique prefix per test run
	prefix := fmt.Sprintf("test-seglist-%d/", time.Now().UnixNano())
	store := NewStore(client, bucket, prefix)
	key := slotstore.KeyOf("slot-1")

	t.Run("MissingSlot", func(t *testing.T) {
		_, err := store.Read(ctx, "test", key)
		require.ErrorIs(t, err, slotstore.ErrNotFound)

		_, err = store.ReadAt(ctx, "test", key, 0, 32)
		require.ErrorIs(t, err, slotstore.ErrNotFound)
	})

	t.Run("WholeSlot", func(t *testing.T) {
		data := []byte("hello s3 slot")
		require.NoError(t, store.Write(ctx, "test", key, data))

		got, err := store.Read(ctx, "test", key)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("RangedRead", func(t *testing.T) {
		part, err := store.ReadAt(ctx, "test", key, 6, 2)
		require.NoError(t, err)
		assert.Equal(t, "s3", string(part))

		// A range past the extent is a sparse zero read.
		tail, err := store.ReadAt(ctx, "test", key, 1024, 8)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, 8), tail)
	})

	t.Run("OffsetWrite", func(t *testing.T) {
		require.NoError(t, store.WriteAt(ctx, "test", key, 6, []byte("S3")))

		got, err := store.Read(ctx, "test", key)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello S3 slot"), got)
	})
}
