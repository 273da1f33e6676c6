// Package refget serves genomic sequences addressed by checksum.
//
// A Service loads one or more manifests, each listing indexed FASTA files
// and the checksums and labels of the sequences in them. Requests name a
// sequence by any of its identifiers and may select sub-ranges, the
// reverse strand and codon translation:
//
//	svc, err := refget.Open(ctx, refget.Local("/data", "refs/manifest.yaml"),
//	    refget.WithLogger(refget.NewJSONLogger(slog.LevelInfo)),
//	)
//	if err != nil { ... }
//	defer svc.Close()
//
//	resp, err := svc.Sequence(ctx, refget.SequenceRequest{
//	    ID:     "6aef897c3d6ff0c78aff06ac189178dd",
//	    Start:  "10000",
//	    End:    "10100",
//	    Strand: "-1",
//	})
//	if err != nil {
//	    http.Error(w, err.Error(), refget.StatusCode(err))
//	    return
//	}
//	_, err = resp.WriteTo(ctx, w)
//
// Validation happens in Sequence; WriteTo only streams. Package httpapi
// exposes a Service over HTTP.
//
// # Storage
//
// Sequence files are read through blobstore. Local files are memory
// mapped; S3 and MinIO stores issue ranged reads and should be combined
// with WithBlockCache.
//
// # Errors
//
// Every error returned by a Service matches one of ErrNotFound,
// ErrBadRequest, ErrUnsupportedRepresentation or
// ErrUnsupportedRangeDirection under errors.Is, or is an internal
// failure. StatusCode maps them to HTTP.
package refget
