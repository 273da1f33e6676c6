// Package manifest describes the sequence files a refget service
// serves.
//
// A manifest names each FASTA file, its .fai index and, for every
// sequence, the checksums and labels it is retrievable by:
//
//	files:
//	  - path: GRCh38.fa
//	    sequences:
//	      - name: chr1
//	        checksums:
//	          - {type: md5, value: 6aef897c3d6ff0c78aff06ac189178dd}
//	        aliases: [chr1, "1"]
//
// Manifests are JSON or YAML and may be zstd or lz4 compressed; the
// extension of the blob name selects the format. Index blobs may be
// compressed the same way.
package manifest
