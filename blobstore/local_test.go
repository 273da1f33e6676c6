package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_OpenRead(t *testing.T) {
	tmpDir := t.TempDir()
	data := []byte(">chr1\nACGTACGTAC\nGTACGT\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "chr1.fa"), data, 0o644))

	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	blob, err := store.Open(ctx, "chr1.fa")
	require.NoError(t, err)
	defer blob.Close()

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
	assert.Equal(t, "GTACGT\n", string(rest))

	m, ok := blob.(Mappable)
	require.True(t, ok)
	all, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, data, all)
}

func TestLocalStore_NotFound(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	_, err := store.Open(context.Background(), "missing.fa")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_AbsoluteName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abs.fa")
	require.NoError(t, os.WriteFile(path, []byte("ACGT"), 0o644))

	store := NewLocalStore("/does/not/matter")
	data, err := ReadAll(context.Background(), store, path)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(data))
}

func TestLocalStore_List(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "cat"), 0o755))
	for _, name := range []string{"cat/A1.fa", "cat/A1.fa.fai", "human/chr1.fa"} {
		full := filepath.Join(tmpDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	store := NewLocalStore(tmpDir)
	names, err := store.List(context.Background(), "cat/")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat/A1.fa", "cat/A1.fa.fai"}, names)

	all, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLocalStore_CancelledContext(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.fa"), []byte("ACGT"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStore(tmpDir).Open(ctx, "a.fa")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := []byte("ACGTNNNN")
	require.NoError(t, store.Put(ctx, "b.fa", src))
	require.NoError(t, store.Put(ctx, "a.fa", []byte("TT")))
	src[0] = 'X'

	data, err := ReadAll(ctx, store, "b.fa")
	require.NoError(t, err)
	assert.Equal(t, "ACGTNNNN", string(data))

	blob, err := store.Open(ctx, "b.fa")
	require.NoError(t, err)
	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 4)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "NNNN", string(buf[:n]))
	assert.Equal(t, int64(2), store.Opens())

	require.NoError(t, blob.Close())
	_, err = blob.ReadAt(ctx, buf, 0)
	assert.ErrorIs(t, err, os.ErrClosed)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.fa", "b.fa"}, names)

	names, err = store.List(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.fa"}, names)

	require.NoError(t, store.Delete(ctx, "a.fa"))
	_, err = store.Open(ctx, "a.fa")
	assert.ErrorIs(t, err, ErrNotFound)
}
