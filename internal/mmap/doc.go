// Package mmap provides read-only memory-mapped file access.
//
// Sequence files are often several gigabytes. Mapping them lets range
// requests touch only the pages that hold the requested bases, and lets
// the kernel page cache be shared across requests and processes.
//
//	m, err := mmap.Open("GRCh38.fa")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessRandom)
//	view, err := m.Slice(offset, n)
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) hints
//   - Windows: CreateFileMapping/MapViewOfFile, advice is a no-op
//
// # Thread Safety
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must ensure no goroutine still uses a slice returned by Bytes or Slice.
package mmap
