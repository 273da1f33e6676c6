// Package blobstore abstracts where sequence files, their indexes and
// manifests live.
//
// A BlobStore opens immutable blobs for concurrent random reads:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    List(ctx, prefix) ([]string, error)
//	}
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap (implements Mappable)
//   - MemoryStore: in-memory, for tests and fixtures
//   - CachingStore: block cache in front of any store
//   - s3.Store: Amazon S3 with ranged GETs
//   - minio.Store: MinIO and other S3-compatible services
//
// Remote stores should be wrapped in a CachingStore; FASTA range requests
// tend to revisit the same few blocks.
package blobstore
