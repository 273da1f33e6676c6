// Package faidx provides random access to sequences in FASTA files
// indexed by samtools-style .fai files.
//
// Only the bytes spanning a requested interval are read. Line
// terminators are stripped using the line geometry recorded in the
// index, so the cost of a fetch is proportional to its length rather
// than to its position in the file.
//
//	ix, err := faidx.ParseIndex(r)
//	store := faidx.NewStore(blobs, faidx.DefaultMaxOpen)
//	store.Register("GRCh38.fa", ix)
//
//	bases, err := store.Fetch(ctx, "GRCh38.fa", "chr1", 10000, 10100)
//
// Large intervals should use Stream or StreamReverse, which deliver the
// bases in bounded chunks.
//
// # File Handles
//
// Sequence files are opened lazily through a Pool, a ref-counted LRU
// shared by all requests. A handle evicted while in use stays open until
// its last reader releases it.
package faidx
