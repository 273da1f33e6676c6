package s3

import (
	"context"
	"os"
	"testing"

	"github.com/hupe1980/refget/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_S3Store reads an existing object; the store is read-only.
// Set S3_BUCKET and S3_TEST_KEY (an object of at least 100 bytes).
func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	key := os.Getenv("S3_TEST_KEY")
	if bucket == "" || key == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET or S3_TEST_KEY not set")
	}

	ctx := context.Background()
	store, err := New(ctx, bucket)
	require.NoError(t, err)

	t.Run("OpenAndRead", func(t *testing.T) {
		blob, err := store.Open(ctx, key)
		require.NoError(t, err)
		defer blob.Close()
		require.GreaterOrEqual(t, blob.Size(), int64(100))

		whole, err := blobstore.ReadAll(ctx, store, key)
		require.NoError(t, err)
		assert.Equal(t, blob.Size(), int64(len(whole)))

		buf := make([]byte, 50)
		n, err := blob.ReadAt(ctx, buf, 25)
		require.NoError(t, err)
		assert.Equal(t, 50, n)
		assert.Equal(t, whole[25:75], buf)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "refget-nonexistent-object")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
