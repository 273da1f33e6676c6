package refget

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metric.PrometheusCollector for a Prometheus implementation.
type MetricsCollector interface {
	// RecordSequence is called after each sequence request.
	// bases is the number of bases read from storage.
	RecordSequence(representation string, bases int64, duration time.Duration, err error)

	// RecordMetadata is called after each metadata request.
	RecordMetadata(duration time.Duration, err error)

	// RecordLoad is called once per sequence file registered by Open.
	RecordLoad(sequences int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSequence(string, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordMetadata(time.Duration, error)                {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SequenceCount      atomic.Int64
	SequenceErrors     atomic.Int64
	SequenceBases      atomic.Int64
	SequenceTotalNanos atomic.Int64
	MetadataCount      atomic.Int64
	MetadataErrors     atomic.Int64
	LoadedFiles        atomic.Int64
	LoadedSequences    atomic.Int64
	LoadErrors         atomic.Int64
}

// RecordSequence implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSequence(_ string, bases int64, duration time.Duration, err error) {
	b.SequenceCount.Add(1)
	b.SequenceBases.Add(bases)
	b.SequenceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SequenceErrors.Add(1)
	}
}

// RecordMetadata implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMetadata(_ time.Duration, err error) {
	b.MetadataCount.Add(1)
	if err != nil {
		b.MetadataErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(sequences int, _ time.Duration, err error) {
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadedFiles.Add(1)
	b.LoadedSequences.Add(int64(sequences))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SequenceCount:    b.SequenceCount.Load(),
		SequenceErrors:   b.SequenceErrors.Load(),
		SequenceBases:    b.SequenceBases.Load(),
		SequenceAvgNanos: b.getAvgSequenceNanos(),
		MetadataCount:    b.MetadataCount.Load(),
		MetadataErrors:   b.MetadataErrors.Load(),
		LoadedFiles:      b.LoadedFiles.Load(),
		LoadedSequences:  b.LoadedSequences.Load(),
		LoadErrors:       b.LoadErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSequenceNanos() int64 {
	count := b.SequenceCount.Load()
	if count == 0 {
		return 0
	}
	return b.SequenceTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SequenceCount    int64
	SequenceErrors   int64
	SequenceBases    int64
	SequenceAvgNanos int64
	MetadataCount    int64
	MetadataErrors   int64
	LoadedFiles      int64
	LoadedSequences  int64
	LoadErrors       int64
}
