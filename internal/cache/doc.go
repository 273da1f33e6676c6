// Package cache provides in-memory LRU caching for blocks of immutable blobs.
//
// Remote sequence files (S3, MinIO) are read in fixed-size blocks; the
// blocks around popular regions (gene starts, chromosome tails) are kept
// here so repeat range requests do not pay another round trip.
//
// ShardedLRUBlockCache uses 64 shards, each with its own mutex. Both
// cache types can reserve their bytes against a resource.Controller so the
// total cache footprint respects a process-wide memory limit.
package cache
