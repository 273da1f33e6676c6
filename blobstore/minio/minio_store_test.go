package minio

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/hupe1980/refget/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	bucket := "test-refget"
	store, err := New(Config{
		Endpoint:        "localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
		Bucket:          bucket,
		Prefix:          "test-prefix/",
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := store.client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := store.client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, store.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	data := []byte(">chr1\nACGTACGTAC\nGTA\n")
	_, err = store.client.PutObject(ctx, bucket, "test-prefix/chr1.fa", bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.client.RemoveObject(ctx, bucket, "test-prefix/chr1.fa", minio.RemoveObjectOptions{})
	})

	blob, err := store.Open(ctx, "chr1.fa")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "ACGT", string(buf))

	rc, err := blob.ReadRange(ctx, 17, 100)
	require.NoError(t, err)
	rest, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "GTA\n", string(rest))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "chr1.fa")

	_, err = store.Open(ctx, "missing.fa")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
