package faidx

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/refget/blobstore"
)

// DefaultChunkSize is the default number of bases per streamed chunk.
const DefaultChunkSize = 1 << 20

// readBufferSize bounds reads from blobs without a memory mapping.
const readBufferSize = 64 * 1024

// Store gives random access to sequences in indexed FASTA files.
type Store struct {
	pool *Pool

	mu      sync.RWMutex
	indexes map[string]*Index
}

// NewStore creates a Store reading sequence files from blobs through a
// handle pool of at most maxOpen files.
func NewStore(blobs blobstore.BlobStore, maxOpen int) *Store {
	return &Store{
		pool:    NewPool(blobs, maxOpen),
		indexes: make(map[string]*Index),
	}
}

// Register associates the parsed index with a sequence file path.
func (s *Store) Register(path string, ix *Index) {
	s.mu.Lock()
	s.indexes[path] = ix
	s.mu.Unlock()
}

// Index returns the index registered for path.
func (s *Store) Index(path string) (*Index, bool) {
	s.mu.RLock()
	ix, ok := s.indexes[path]
	s.mu.RUnlock()
	return ix, ok
}

// Entry returns the layout of sequence name in file path.
func (s *Store) Entry(path, name string) (Entry, error) {
	ix, ok := s.Index(path)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}
	e, ok := ix.Lookup(name)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q in %s", ErrUnknownSequence, name, path)
	}
	return e, nil
}

// Pool returns the underlying handle pool.
func (s *Store) Pool() *Pool {
	return s.pool
}

// Fetch returns the bases of name in [start, end).
func (s *Store) Fetch(ctx context.Context, path, name string, start, end int64) ([]byte, error) {
	e, err := s.Entry(path, name)
	if err != nil {
		return nil, err
	}
	if err := checkInterval(e, start, end); err != nil {
		return nil, err
	}

	blob, release, err := s.pool.Acquire(ctx, path)
	if err != nil {
		return nil, err
	}
	defer release()

	return readBases(ctx, blob, e, start, end, make([]byte, 0, end-start), nil)
}

// Stream calls fn with consecutive chunks of at most chunk bases covering
// [start, end). A chunk is only valid until fn returns.
func (s *Store) Stream(ctx context.Context, path, name string, start, end int64, chunk int, fn func([]byte) error) error {
	return s.stream(ctx, path, name, start, end, chunk, false, fn)
}

// StreamReverse is like Stream but walks from end toward start and hands
// out each chunk with its bases reversed. Concatenating the chunks yields
// the reversed interval.
func (s *Store) StreamReverse(ctx context.Context, path, name string, start, end int64, chunk int, fn func([]byte) error) error {
	return s.stream(ctx, path, name, start, end, chunk, true, fn)
}

func (s *Store) stream(ctx context.Context, path, name string, start, end int64, chunk int, reverse bool, fn func([]byte) error) error {
	e, err := s.Entry(path, name)
	if err != nil {
		return err
	}
	if err := checkInterval(e, start, end); err != nil {
		return err
	}
	if chunk <= 0 {
		chunk = DefaultChunkSize
	}

	blob, release, err := s.pool.Acquire(ctx, path)
	if err != nil {
		return err
	}
	defer release()

	size := min(int64(chunk), end-start)
	out := make([]byte, 0, size)
	var scratch []byte

	for done := int64(0); done < end-start; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(int64(chunk), end-start-done)
		lo := start + done
		if reverse {
			lo = end - done - n
		}

		out, err = readBases(ctx, blob, e, lo, lo+n, out[:0], &scratch)
		if err != nil {
			return err
		}
		if reverse {
			reverseBytes(out)
		}
		if err := fn(out); err != nil {
			return err
		}
		done += n
	}
	return nil
}

// Close releases all cached file handles.
func (s *Store) Close() error {
	return s.pool.Close()
}

func checkInterval(e Entry, start, end int64) error {
	if start < 0 || start >= end || end > e.Length {
		return fmt.Errorf("%w: [%d, %d) of %q with length %d", ErrOutOfRange, start, end, e.Name, e.Length)
	}
	return nil
}

// readBases appends the bases in [start, end) to dst. scratch, if set,
// is reused as the read buffer when the blob is not mapped.
func readBases(ctx context.Context, blob blobstore.Blob, e Entry, start, end int64, dst []byte, scratch *[]byte) ([]byte, error) {
	from, to := e.Span(start, end)
	if to > blob.Size() {
		return nil, fmt.Errorf("%w: %q needs bytes up to %d, file has %d", ErrCorrupt, e.Name, to, blob.Size())
	}

	mark := len(dst)
	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		dst = appendBases(dst, data[from:to])
	} else {
		var err error
		if dst, err = streamBases(ctx, blob, from, to, dst, scratch); err != nil {
			return nil, err
		}
	}

	if int64(len(dst)-mark) != end-start {
		return nil, fmt.Errorf("%w: %q [%d, %d) yielded %d bases", ErrCorrupt, e.Name, start, end, len(dst)-mark)
	}
	return dst, nil
}

// streamBases reads the raw bytes [from, to) through a bounded buffer.
func streamBases(ctx context.Context, blob blobstore.Blob, from, to int64, dst []byte, scratch *[]byte) ([]byte, error) {
	rc, err := blob.ReadRange(ctx, from, to-from)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf []byte
	if scratch != nil {
		buf = *scratch
	}
	if cap(buf) < readBufferSize {
		buf = make([]byte, readBufferSize)
		if scratch != nil {
			*scratch = buf
		}
	}
	buf = buf[:readBufferSize]

	for {
		n, err := rc.Read(buf)
		dst = appendBases(dst, buf[:n])
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// appendBases appends raw to dst without line terminators.
func appendBases(dst, raw []byte) []byte {
	for _, b := range raw {
		if b != '\n' && b != '\r' {
			dst = append(dst, b)
		}
	}
	return dst
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
