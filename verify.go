package refget

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/refget/checksum"
)

// Verify recomputes the digests of every sequence and compares them with
// the registered checksums. Sequences are verified concurrently; the
// first mismatch or read error cancels the rest.
func (s *Service) Verify(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, rec := range s.index.Records() {
		g.Go(func() error {
			return s.VerifyRecord(ctx, rec)
		})
	}
	return g.Wait()
}

// VerifyRecord recomputes the digests of one sequence.
func (s *Service) VerifyRecord(ctx context.Context, rec *checksum.Record) error {
	d := checksum.NewDigester()

	var err error
	if rec.Length > 0 {
		err = s.sequences.Stream(ctx, rec.File, rec.Name, 0, rec.Length, s.opts.chunkSize, func(chunk []byte) error {
			_, err := d.Write(chunk)
			return err
		})
	}
	if err == nil {
		err = checksum.Verify(rec, d.Sums())
	}

	s.opts.logger.LogVerify(ctx, rec.ID, d.Len(), err)
	return err
}
