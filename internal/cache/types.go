package cache

import "context"

// BlockKey identifies a fixed-size block of a named blob.
// Blobs are immutable for the lifetime of a server, so the name and the
// block index are enough to make a key stable.
type BlockKey struct {
	// Blob is the store-relative name, e.g. "GRCh38/chr1.fa".
	Blob string
	// Block is the block index (byte offset / block size).
	Block int64
}

// BlockCache is a byte-oriented cache for immutable blocks.
// Returned slices must be treated as read-only.
type BlockCache interface {
	// Get returns a cached block. ok=false if missing.
	Get(ctx context.Context, key BlockKey) (b []byte, ok bool)
	// Set caches a block. The cache retains b; callers must not modify it.
	Set(ctx context.Context, key BlockKey, b []byte)
	// Invalidate removes entries matching the predicate.
	Invalidate(predicate func(key BlockKey) bool)
	// Close releases held memory.
	Close() error
	// Stats returns hit and miss counts.
	Stats() (hits, misses int64)
}
