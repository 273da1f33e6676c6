package checksum

import (
	"fmt"
	"slices"
)

type entry struct {
	record    *Record
	algorithm Algorithm
}

// Duplicate reports an alias claimed by more than one record.
type Duplicate struct {
	Alias Alias
	// Kept is the ID of the record that owns the alias.
	Kept string
	// Dropped is the ID of the record whose claim was ignored.
	Dropped string
}

// Index resolves aliases to records. It is immutable once built and
// safe for concurrent use.
type Index struct {
	byAlias    map[string]entry
	records    []*Record
	algorithms []Algorithm
	duplicates []Duplicate
}

// NewIndex registers every alias of every record. An alias already
// claimed by an earlier record is skipped and reported by Duplicates.
func NewIndex(records ...*Record) (*Index, error) {
	ix := &Index{byAlias: make(map[string]entry)}

	seen := make(map[Algorithm]bool)
	for _, r := range records {
		if r == nil || r.ID == "" || len(r.Aliases) == 0 {
			return nil, fmt.Errorf("%w: record %v has no identifiers", ErrInvalidRecord, r)
		}

		for _, a := range r.Aliases {
			if a.Value == "" {
				return nil, fmt.Errorf("%w: %s has an empty %s alias", ErrInvalidRecord, r.ID, a.Algorithm)
			}
			if a.Algorithm.IsDigest() && (len(a.Value) != a.Algorithm.HexLen() || !isHex(a.Value)) {
				return nil, fmt.Errorf("%w: %s: %q is not a %s digest", ErrInvalidRecord, r.ID, a.Value, a.Algorithm)
			}

			key := normalize(a.Algorithm, a.Value)
			if prev, dup := ix.byAlias[key]; dup {
				if prev.record != r {
					ix.duplicates = append(ix.duplicates, Duplicate{Alias: a, Kept: prev.record.ID, Dropped: r.ID})
				}
				continue
			}

			ix.byAlias[key] = entry{record: r, algorithm: a.Algorithm}
			if !seen[a.Algorithm] {
				seen[a.Algorithm] = true
				ix.algorithms = append(ix.algorithms, a.Algorithm)
			}
		}
		ix.records = append(ix.records, r)
	}

	slices.Sort(ix.algorithms)
	return ix, nil
}

// Resolve returns the record registered under token.
func (ix *Index) Resolve(token string) (*Record, error) {
	if e, ok := ix.lookup(token); ok {
		return e.record, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, token)
}

// ResolveAs resolves token only if it was registered under algorithm.
func (ix *Index) ResolveAs(algorithm Algorithm, token string) (*Record, error) {
	if e, ok := ix.lookup(token); ok && e.algorithm == algorithm {
		return e.record, nil
	}
	return nil, fmt.Errorf("%w: %s %q", ErrNotFound, algorithm, token)
}

func (ix *Index) lookup(token string) (entry, bool) {
	e, ok := ix.byAlias[normalize(Infer(token), token)]
	if !ok {
		// Labels that happen to look like hex digests are stored verbatim.
		e, ok = ix.byAlias[token]
	}
	return e, ok
}

// Labels returns the algorithms present in the index, sorted.
func (ix *Index) Labels() []Algorithm {
	return ix.algorithms
}

// HasAlgorithm reports whether any alias uses a.
func (ix *Index) HasAlgorithm(a Algorithm) bool {
	_, ok := slices.BinarySearch(ix.algorithms, a)
	return ok
}

// Records returns all records in registration order.
func (ix *Index) Records() []*Record {
	return ix.records
}

// Len returns the number of records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Duplicates returns the aliases that were ignored during NewIndex.
func (ix *Index) Duplicates() []Duplicate {
	return ix.duplicates
}
