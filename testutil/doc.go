// Package testutil provides testing utilities for refget.
//
// This package is intended for use in tests only. It provides a
// deterministic random source for sequences and a builder for indexed
// FASTA fixtures.
//
//	rng := testutil.NewRNG(4711)
//	fasta, fai := testutil.NewFASTA(60).
//		Add("chr1", rng.Bases(1000)).
//		Add("chr2", []byte("ACGTN")).
//		Build()
package testutil
