package refget

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/faidx"
	"github.com/hupe1980/refget/internal/cache"
	"github.com/hupe1980/refget/internal/resource"
	"github.com/hupe1980/refget/manifest"
)

// Source names the store holding sequence files and the manifests that
// describe them. Manifest names ending in "/" are directories whose
// manifests are discovered.
type Source struct {
	Store     blobstore.BlobStore
	Manifests []string
}

// Local returns a Source reading from the local directory root.
func Local(root string, manifests ...string) Source {
	return Source{Store: blobstore.NewLocalStore(root), Manifests: manifests}
}

// Remote returns a Source reading from any BlobStore, such as
// blobstore/s3 or blobstore/minio.
func Remote(store blobstore.BlobStore, manifests ...string) Source {
	return Source{Store: store, Manifests: manifests}
}

// Service resolves checksums and serves sequences and metadata.
//
// All state except the file handle pool and block cache is immutable
// after Open, so a Service is safe for concurrent use.
type Service struct {
	opts options

	index     *checksum.Index
	sequences *faidx.Store
	cache     cache.BlockCache
	caching   *blobstore.CachingStore

	closed atomic.Bool
}

// Open loads the manifests of src, parses every FASTA index they name
// and builds the checksum index.
func Open(ctx context.Context, src Source, optFns ...Option) (*Service, error) {
	if src.Store == nil {
		return nil, errors.New("refget: source has no store")
	}
	if len(src.Manifests) == 0 {
		return nil, errors.New("refget: source has no manifests")
	}

	opts := applyOptions(optFns)
	s := &Service{opts: opts}

	var reads blobstore.BlobStore = src.Store
	if opts.blockCacheBytes > 0 {
		rc := resource.NewController(resource.Config{
			MemoryLimitBytes:     opts.blockCacheBytes,
			MaxConcurrentFetches: opts.fetchConcurrency,
			IOLimitBytesPerSec:   opts.ioLimitBytesPerSec,
		})
		s.cache = cache.NewShardedLRUBlockCache(opts.blockCacheBytes, rc)
		s.caching = blobstore.NewCachingStore(src.Store, s.cache, opts.blockSize, rc)
		reads = s.caching
	}
	s.sequences = faidx.NewStore(reads, opts.maxOpenFiles)

	m, err := manifest.LoadAll(ctx, src.Store, src.Manifests, opts.codec)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	var records []*checksum.Record
	for _, f := range m.Files {
		recs, err := s.register(ctx, src.Store, f)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		records = append(records, recs...)
	}

	s.index, err = checksum.NewIndex(records...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	for _, d := range s.index.Duplicates() {
		opts.logger.LogDuplicateAlias(ctx, d)
	}

	if opts.verify {
		if err := s.Verify(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *Service) register(ctx context.Context, store blobstore.BlobStore, f manifest.File) ([]*checksum.Record, error) {
	start := time.Now()

	ix, err := manifest.ReadIndex(ctx, store, f)
	var recs []*checksum.Record
	if err == nil {
		recs, err = f.Records(ix)
	}

	s.opts.logger.LogIndexLoad(ctx, f.Path, len(recs), err)
	s.opts.metricsCollector.RecordLoad(len(recs), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.sequences.Register(f.Path, ix)
	return recs, nil
}

// Resolve returns the record registered under token.
func (s *Service) Resolve(token string) (*checksum.Record, error) {
	rec, err := s.index.Resolve(token)
	return rec, translateError(err)
}

// ResolveAs resolves token only if it was registered under the named
// algorithm. It fails with ErrNotFound unless label endpoints are
// enabled and the index holds the algorithm.
func (s *Service) ResolveAs(algorithm, token string) (*checksum.Record, error) {
	if !s.opts.labelEndpoints {
		return nil, ErrNotFound
	}
	alg, err := checksum.ParseAlgorithm(algorithm)
	if err != nil || !s.index.HasAlgorithm(alg) {
		return nil, ErrNotFound
	}

	rec, err := s.index.ResolveAs(alg, token)
	return rec, translateError(err)
}

func (s *Service) resolve(algorithm, token string) (*checksum.Record, error) {
	if algorithm != "" {
		return s.ResolveAs(algorithm, token)
	}
	return s.Resolve(token)
}

// Records returns every record in manifest order.
func (s *Service) Records() []*checksum.Record {
	return s.index.Records()
}

// Algorithms returns the algorithms present in the index.
func (s *Service) Algorithms() []checksum.Algorithm {
	return s.index.Labels()
}

// LabelEndpoints reports whether algorithm-qualified lookups are enabled.
func (s *Service) LabelEndpoints() bool {
	return s.opts.labelEndpoints
}

// Logger returns the configured logger.
func (s *Service) Logger() *Logger {
	return s.opts.logger
}

// Stats is a snapshot of runtime state.
type Stats struct {
	Sequences   int
	OpenFiles   int
	CacheHits   int64
	CacheMisses int64
}

// Stats returns a snapshot of runtime state.
func (s *Service) Stats() Stats {
	st := Stats{OpenFiles: s.sequences.Pool().Stats().Open}
	if s.index != nil {
		st.Sequences = s.index.Len()
	}
	if s.caching != nil {
		st.CacheHits, st.CacheMisses = s.caching.Stats()
	}
	return st
}

// Close releases file handles and cached blocks.
func (s *Service) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := s.sequences.Close()
	if s.cache != nil {
		err = errors.Join(err, s.cache.Close())
	}
	return err
}
