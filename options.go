package refget

import (
	"log/slog"

	"github.com/hupe1980/refget/blobstore"
	"github.com/hupe1980/refget/codec"
	"github.com/hupe1980/refget/faidx"
	"github.com/hupe1980/refget/negotiate"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger

	blockCacheBytes    int64
	blockSize          int64
	maxOpenFiles       int
	fetchConcurrency   int64
	ioLimitBytesPerSec int64

	fastaLineWidth int
	chunkSize      int
	labelEndpoints bool
	verify         bool
}

func defaultOptions() options {
	return options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		blockSize:        blobstore.DefaultBlockSize,
		maxOpenFiles:     faidx.DefaultMaxOpen,
		fastaLineWidth:   negotiate.DefaultLineWidth,
		chunkSize:        faidx.DefaultChunkSize,
	}
}

func applyOptions(optFns []Option) options {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Option configures Open.
type Option func(*options)

// WithCodec configures the codec used for JSON manifests and metadata
// bodies.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &refget.BasicMetricsCollector{}
//	svc, _ := refget.Open(ctx, src, refget.WithMetricsCollector(metrics))
//	// ... serve requests ...
//	stats := metrics.GetStats()
//	fmt.Printf("Sequences: %d, Avg latency: %dns\n", stats.SequenceCount, stats.SequenceAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := refget.NewJSONLogger(slog.LevelInfo)
//	svc, _ := refget.Open(ctx, src, refget.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithBlockCache enables a sharded LRU block cache of the given size in
// front of the sequence store. Useful for remote stores, where every
// uncached read is a ranged GET. Zero disables caching.
func WithBlockCache(capacityBytes int64) Option {
	return func(o *options) {
		o.blockCacheBytes = capacityBytes
	}
}

// WithBlockSize sets the block size of the block cache.
func WithBlockSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithMaxOpenFiles bounds the number of sequence files held open.
// Values are clamped to [1, 4096].
func WithMaxOpenFiles(n int) Option {
	return func(o *options) {
		o.maxOpenFiles = n
	}
}

// WithFetchConcurrency bounds concurrent backend reads issued by the
// block cache.
func WithFetchConcurrency(n int64) Option {
	return func(o *options) {
		o.fetchConcurrency = n
	}
}

// WithIOLimit caps backend read throughput in bytes per second.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimitBytesPerSec = bytesPerSec
	}
}

// WithFastaLineWidth sets the number of bases per FASTA line.
// Zero or less writes each sequence on a single line.
func WithFastaLineWidth(n int) Option {
	return func(o *options) {
		o.fastaLineWidth = n
	}
}

// WithChunkSize sets the number of bases read from storage at a time.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithLabelEndpoints enables lookups qualified by algorithm, such as
// /faidx/md5/{id}.
func WithLabelEndpoints(enabled bool) Option {
	return func(o *options) {
		o.labelEndpoints = enabled
	}
}

// WithVerify recomputes the digests of every sequence during Open and
// fails on mismatch.
func WithVerify(enabled bool) Option {
	return func(o *options) {
		o.verify = enabled
	}
}
