package manifest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/faidx"
)

// ReadIndex loads and parses the FASTA index of f.
func ReadIndex(ctx context.Context, store blobstore.BlobStore, f File) (*faidx.Index, error) {
	name := f.IndexPath()
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}

	data, _, err = Decompress(name, data)
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}

	ix, err := faidx.ParseIndex(bytes.NewReader(data))
	if err != nil {
		return nil, &Error{Path: name, Err: err}
	}
	return ix, nil
}

// Records builds the checksum records of f. Lengths come from ix; a
// sequence missing from ix is an error.
func (f File) Records(ix *faidx.Index) ([]*checksum.Record, error) {
	out := make([]*checksum.Record, 0, len(f.Sequences))
	for _, s := range f.Sequences {
		e, ok := ix.Lookup(s.Name)
		if !ok {
			return nil, &Error{Path: f.Path, Err: fmt.Errorf("%w: %q", ErrMissingSequence, s.Name)}
		}

		aliases := make([]checksum.Alias, 0, len(s.Checksums)+len(s.Aliases))
		for _, c := range s.Checksums {
			alg, err := checksum.ParseAlgorithm(c.Type)
			if err != nil {
				return nil, &Error{Path: f.Path, Err: fmt.Errorf("%q: %w", s.Name, err)}
			}
			aliases = append(aliases, checksum.Alias{Algorithm: alg, Value: c.Value})
		}
		for _, a := range s.Aliases {
			aliases = append(aliases, checksum.Alias{Algorithm: checksum.Label, Value: a})
		}

		out = append(out, checksum.NewRecord(s.Name, f.Path, e.Length, aliases...))
	}
	return out, nil
}
