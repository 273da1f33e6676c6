package faidx

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/testutil"
)

// unmappedStore hides the Mappable fast path. Its blobs serve reads
// through ReadRange only.
type unmappedStore struct {
	blobstore.BlobStore
	ranges *atomic.Int64
}

type unmappedBlob struct {
	blobstore.Blob
	ranges *atomic.Int64
}

var errReadAt = errors.New("ReadAt on unmapped blob")

func (s unmappedStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	b, err := s.BlobStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return unmappedBlob{Blob: b, ranges: s.ranges}, nil
}

func (b unmappedBlob) ReadAt(context.Context, []byte, int64) (int, error) {
	return 0, errReadAt
}

func (b unmappedBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	b.ranges.Add(1)
	return b.Blob.ReadRange(ctx, off, length)
}

func newTestStore(t *testing.T, mapped bool, fasta, fai []byte) *Store {
	t.Helper()

	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(context.Background(), "ref.fa", fasta))

	var blobs blobstore.BlobStore = mem
	if !mapped {
		blobs = unmappedStore{BlobStore: mem, ranges: new(atomic.Int64)}
	}

	ix, err := ParseIndex(bytesReader(fai))
	require.NoError(t, err)

	s := NewStore(blobs, 4)
	s.Register("ref.fa", ix)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Fetch(t *testing.T) {
	rng := testutil.NewRNG(1)
	chr1 := rng.Bases(1000)
	chr2 := rng.Bases(37)

	for _, layout := range []struct {
		name  string
		width int
		crlf  bool
	}{
		{"width 60", 60, false},
		{"width 7 crlf", 7, true},
		{"single line", 0, false},
	} {
		for _, mapped := range []bool{true, false} {
			name := layout.name
			if !mapped {
				name += " unmapped"
			}
			t.Run(name, func(t *testing.T) {
				f := testutil.NewFASTA(layout.width)
				f.CRLF = layout.crlf
				fasta, fai := f.Add("chr1", chr1).Add("chr2", chr2).Build()
				s := newTestStore(t, mapped, fasta, fai)
				ctx := context.Background()

				for _, iv := range [][2]int64{{0, 1000}, {0, 10}, {59, 61}, {999, 1000}, {123, 777}} {
					got, err := s.Fetch(ctx, "ref.fa", "chr1", iv[0], iv[1])
					require.NoError(t, err)
					assert.Equal(t, string(chr1[iv[0]:iv[1]]), string(got))
				}

				got, err := s.Fetch(ctx, "ref.fa", "chr2", 0, 37)
				require.NoError(t, err)
				assert.Equal(t, chr2, got)
			})
		}
	}
}

func TestStore_FetchUnmappedStreamsRange(t *testing.T) {
	bases := testutil.NewRNG(5).Bases(3 * readBufferSize)
	fasta, fai := testutil.NewFASTA(60).Add("chr1", bases).Build()

	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(context.Background(), "ref.fa", fasta))
	ranges := new(atomic.Int64)

	ix, err := ParseIndex(bytesReader(fai))
	require.NoError(t, err)
	s := NewStore(unmappedStore{BlobStore: mem, ranges: ranges}, 4)
	s.Register("ref.fa", ix)
	defer s.Close()

	got, err := s.Fetch(context.Background(), "ref.fa", "chr1", 7, int64(len(bases))-3)
	require.NoError(t, err)
	assert.Equal(t, string(bases[7:len(bases)-3]), string(got))
	assert.Equal(t, int64(1), ranges.Load())

	var chunks int
	err = s.Stream(context.Background(), "ref.fa", "chr1", 0, int64(len(bases)), readBufferSize/2, func(chunk []byte) error {
		chunks++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, chunks)
	assert.Equal(t, int64(7), ranges.Load())
}

func TestStore_FetchErrors(t *testing.T) {
	fasta, fai := testutil.NewFASTA(4).Add("chr1", []byte("ACGTACGTAC")).Build()
	s := newTestStore(t, true, fasta, fai)
	ctx := context.Background()

	_, err := s.Fetch(ctx, "ref.fa", "chr1", 5, 5)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.Fetch(ctx, "ref.fa", "chr1", 0, 11)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = s.Fetch(ctx, "ref.fa", "chrX", 0, 1)
	assert.ErrorIs(t, err, ErrUnknownSequence)

	_, err = s.Fetch(ctx, "other.fa", "chr1", 0, 1)
	assert.ErrorIs(t, err, ErrUnknownFile)
}

func TestStore_FetchCorrupt(t *testing.T) {
	// The index claims more bases than the file holds.
	s := newTestStore(t, true, []byte(">chr1\nACGT\n"), []byte("chr1\t8\t6\t4\t5\n"))

	_, err := s.Fetch(context.Background(), "ref.fa", "chr1", 0, 8)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestStore_Stream(t *testing.T) {
	bases := testutil.NewRNG(2).Bases(500)
	fasta, fai := testutil.NewFASTA(60).Add("chr1", bases).Build()

	for _, mapped := range []bool{true, false} {
		s := newTestStore(t, mapped, fasta, fai)
		ctx := context.Background()

		var got []byte
		var sizes []int
		err := s.Stream(ctx, "ref.fa", "chr1", 10, 260, 100, func(chunk []byte) error {
			sizes = append(sizes, len(chunk))
			got = append(got, chunk...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{100, 100, 50}, sizes)
		assert.Equal(t, string(bases[10:260]), string(got))

		got = got[:0]
		sizes = sizes[:0]
		err = s.StreamReverse(ctx, "ref.fa", "chr1", 10, 260, 100, func(chunk []byte) error {
			sizes = append(sizes, len(chunk))
			got = append(got, chunk...)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{100, 100, 50}, sizes)

		want := append([]byte(nil), bases[10:260]...)
		reverseBytes(want)
		assert.Equal(t, string(want), string(got))
	}
}

func TestStore_StreamStops(t *testing.T) {
	fasta, fai := testutil.NewFASTA(60).Add("chr1", testutil.NewRNG(3).Bases(300)).Build()
	s := newTestStore(t, true, fasta, fai)

	stop := errors.New("stop")
	calls := 0
	err := s.Stream(context.Background(), "ref.fa", "chr1", 0, 300, 10, func([]byte) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Stream(ctx, "ref.fa", "chr1", 0, 300, 10, func([]byte) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
