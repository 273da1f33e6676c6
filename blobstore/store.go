package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore gives read access to immutable blobs (FASTA files, indexes, manifests).
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// List returns the names of all blobs under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a blob.
// Implementations must be safe for concurrent reads.
type Blob interface {
	// ReadAt reads len(p) bytes at off. It returns io.EOF together with
	// the bytes read when the blob ends first.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange streams [off, off+length), clamped to the blob size.
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// Mappable is an optional interface for Blobs backed by memory mapping.
type Mappable interface {
	// Bytes returns the whole blob without copying.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// Fetcher is an optional BlobStore interface for stores that download
// whole blobs more efficiently than a single ranged read.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// ReadAll reads a whole blob. It is meant for small blobs such as
// indexes and manifests.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	if f, ok := store.(Fetcher); ok {
		return f.Fetch(ctx, name)
	}

	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	}

	buf := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}
