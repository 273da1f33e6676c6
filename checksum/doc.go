// Package checksum resolves checksum aliases to sequence records.
//
// A sequence is registered under the digests of its normalized bases
// (md5, sha1, trunc512, sha256, sha512) and any number of free-form
// labels. The algorithm of a lookup token is inferred from its length
// and charset, so callers pass tokens as they arrive in URLs.
//
//	rec := checksum.NewRecord("chr1", "GRCh38.fa", 248956422,
//		checksum.Alias{Algorithm: checksum.MD5, Value: "6aef897c3d6ff0c78aff06ac189178dd"},
//		checksum.Alias{Algorithm: checksum.Label, Value: "chr1"},
//	)
//	ix, err := checksum.NewIndex(rec)
//	rec, err = ix.Resolve("6aef897c3d6ff0c78aff06ac189178dd")
//
// Digests are matched case-insensitively. Labels are matched exactly.
package checksum
