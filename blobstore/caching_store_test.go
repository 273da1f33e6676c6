package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hupe1980/refget/internal/cache"
	"github.com/hupe1980/refget/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore records backend reads of a MemoryStore.
type countingStore struct {
	*MemoryStore
	reads atomic.Int64
	bytes atomic.Int64
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.MemoryStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingBlob{Blob: b, s: s}, nil
}

type countingBlob struct {
	Blob
	s *countingStore
}

func (b *countingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	b.s.reads.Add(1)
	n, err := b.Blob.ReadAt(ctx, p, off)
	b.s.bytes.Add(int64(n))
	return n, err
}

func newCountingStore(t *testing.T, name string, data []byte) *countingStore {
	t.Helper()
	s := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, s.Put(context.Background(), name, data))
	return s
}

func TestCachingStore_ReadAt(t *testing.T) {
	data := bytes.Repeat([]byte("ACGTACGTAC"), 100) // 1000 bytes
	inner := newCountingStore(t, "seq.fa", data)
	store := NewCachingStore(inner, cache.NewLRUBlockCache(1<<20, nil), 64, nil)
	ctx := context.Background()

	blob, err := store.Open(ctx, "seq.fa")
	require.NoError(t, err)
	defer blob.Close()

	buf := make([]byte, 100)
	n, err := blob.ReadAt(ctx, buf, 30)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[30:130], buf)

	// Blocks 0..2 were one contiguous miss run.
	assert.Equal(t, int64(1), inner.reads.Load())

	// Second read is served from cache.
	n, err = blob.ReadAt(ctx, buf, 40)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[40:140], buf)
	assert.Equal(t, int64(1), inner.reads.Load())

	hits, _ := store.Stats()
	assert.Positive(t, hits)
}

func TestCachingStore_Tail(t *testing.T) {
	data := []byte("0123456789ABCDEFGHIJ") // 20 bytes, blocks of 8
	store := NewCachingStore(newCountingStore(t, "x", data), cache.NewLRUBlockCache(1<<20, nil), 8, nil)
	ctx := context.Background()

	blob, err := store.Open(ctx, "x")
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 15)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "FGHIJ", string(buf[:n]))

	n, err = blob.ReadAt(ctx, buf, 20)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 0, n)

	rc, err := blob.ReadRange(ctx, 4, 100)
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "456789ABCDEFGHIJ", string(got))
}

func TestCachingStore_MixedHitsAndMisses(t *testing.T) {
	data := bytes.Repeat([]byte("N"), 64*10)
	for i := range data {
		data[i] = "ACGT"[i%4]
	}
	inner := newCountingStore(t, "mixed", data)
	store := NewCachingStore(inner, cache.NewShardedLRUBlockCache(1<<20, nil), 64, resource.NewController(resource.Config{MaxConcurrentFetches: 2}))
	ctx := context.Background()

	blob, err := store.Open(ctx, "mixed")
	require.NoError(t, err)

	// Warm blocks 2 and 5.
	_, err = blob.ReadAt(ctx, make([]byte, 10), 2*64)
	require.NoError(t, err)
	_, err = blob.ReadAt(ctx, make([]byte, 10), 5*64)
	require.NoError(t, err)
	before := inner.reads.Load()

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, buf)

	// Missing runs: [0,1], [3,4], [6..9].
	assert.Equal(t, before+3, inner.reads.Load())
}

func TestCachingStore_Concurrent(t *testing.T) {
	data := make([]byte, 4096)
	for i := range data {
		data[i] = "ACGT"[i%4]
	}
	store := NewCachingStore(newCountingStore(t, "c", data), cache.NewShardedLRUBlockCache(1<<20, nil), 128, nil)
	ctx := context.Background()
	blob, err := store.Open(ctx, "c")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func(off int64) {
			defer wg.Done()
			buf := make([]byte, 300)
			n, err := blob.ReadAt(ctx, buf, off)
			assert.NoError(t, err)
			assert.Equal(t, data[off:off+int64(n)], buf[:n])
		}(int64(g * 200))
	}
	wg.Wait()
}

func TestCachingStore_NotFound(t *testing.T) {
	store := NewCachingStore(NewMemoryStore(), cache.NewLRUBlockCache(1024, nil), 0, nil)
	_, err := store.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
