package refget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/negotiate"
	"github.com/hupe1980/refget/nucleotide"
	"github.com/hupe1980/refget/rangespec"
)

// Strand selects the forward sequence or its reverse complement.
type Strand int

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// ParseStrand parses the strand query parameter. Empty means Forward.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "", "1":
		return Forward, nil
	case "-1":
		return Reverse, nil
	default:
		return 0, fmt.Errorf("%w: strand must be 1 or -1, got %q", ErrBadRequest, s)
	}
}

// ParseTranslate parses the translate query parameter. Empty means false.
func ParseTranslate(s string) (bool, error) {
	switch s {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: translate must be 0 or 1, got %q", ErrBadRequest, s)
	}
}

// SequenceRequest carries the raw inputs of a sequence request.
type SequenceRequest struct {
	// ID is the checksum or label from the URL.
	ID string
	// Algorithm qualifies ID on label endpoints. Empty otherwise.
	Algorithm string
	Accept    string
	Start     string
	End       string
	Range     string
	Strand    string
	Translate string
}

// SequenceResponse is a validated sequence request, ready to stream.
type SequenceResponse struct {
	Record         *checksum.Record
	Representation negotiate.Representation
	Plan           rangespec.Plan
	Strand         Strand
	Translate      bool

	svc *Service
}

// Status returns 206 for Range header requests and 200 otherwise.
func (r *SequenceResponse) Status() int {
	if r.Plan.Partial {
		return http.StatusPartialContent
	}
	return http.StatusOK
}

// ContentType returns the media type of the body.
func (r *SequenceResponse) ContentType() string {
	return r.Representation.ContentType()
}

// Sequence validates a sequence request. No sequence data is read until
// WriteTo is called, so every client error surfaces here.
func (s *Service) Sequence(ctx context.Context, req SequenceRequest) (*SequenceResponse, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	rec, err := s.resolve(req.Algorithm, req.ID)
	if err != nil {
		s.opts.logger.LogSequence(ctx, req.ID, "", 0, 0, err)
		s.opts.metricsCollector.RecordSequence("", 0, 0, err)
		return nil, err
	}

	resp, err := s.prepare(rec, req)
	if err != nil {
		err = translateError(err)
		s.opts.logger.LogSequence(ctx, rec.ID, "", 0, 0, err)
		s.opts.metricsCollector.RecordSequence("", 0, 0, err)
		return nil, err
	}
	return resp, nil
}

func (s *Service) prepare(rec *checksum.Record, req SequenceRequest) (*SequenceResponse, error) {
	rep, err := negotiate.Negotiate(negotiate.KindSequence, req.Accept)
	if err != nil {
		return nil, err
	}

	strand, err := ParseStrand(req.Strand)
	if err != nil {
		return nil, err
	}
	translate, err := ParseTranslate(req.Translate)
	if err != nil {
		return nil, err
	}

	plan, err := rangespec.Resolve(rangespec.Request{Start: req.Start, End: req.End, Header: req.Range}, rec.Length)
	if err != nil {
		return nil, err
	}

	return &SequenceResponse{
		Record:         rec,
		Representation: rep,
		Plan:           plan,
		Strand:         strand,
		Translate:      translate,
		svc:            s,
	}, nil
}

var errTranslationDone = errors.New("translation done")

// WriteTo streams the body to w. It returns the number of bases read
// from storage. Once it fails, w holds a truncated body.
func (r *SequenceResponse) WriteTo(ctx context.Context, w io.Writer) (int64, error) {
	s := r.svc
	start := time.Now()

	bases, err := r.write(ctx, w)
	err = translateError(err)

	s.opts.logger.LogSequence(ctx, r.Record.ID, r.Representation.String(), bases, time.Since(start), err)
	s.opts.metricsCollector.RecordSequence(r.Representation.String(), bases, time.Since(start), err)
	return bases, err
}

func (r *SequenceResponse) write(ctx context.Context, w io.Writer) (int64, error) {
	s := r.svc
	if s.closed.Load() {
		return 0, ErrClosed
	}

	body := r.Representation.NewWriter(w, r.Record.ID,
		negotiate.WithLineWidth(s.opts.fastaLineWidth),
		negotiate.WithCodec(s.opts.codec),
	)

	var (
		bases int64
		tr    nucleotide.Translator
		aa    []byte
	)
	emit := func(chunk []byte) error {
		bases += int64(len(chunk))
		if r.Strand == Reverse {
			// Chunks arrive reversed; complementing completes them.
			nucleotide.Complement(chunk)
		}
		if !r.Translate {
			_, err := body.Write(chunk)
			return err
		}

		aa = tr.Write(aa[:0], chunk)
		if len(aa) > 0 {
			if _, err := body.Write(aa); err != nil {
				return err
			}
		}
		if tr.Done() {
			return errTranslationDone
		}
		return nil
	}

	intervals := r.Plan.Intervals
	stream := s.sequences.Stream
	if r.Strand == Reverse {
		intervals = slices.Clone(intervals)
		slices.Reverse(intervals)
		stream = s.sequences.StreamReverse
	}

	for _, iv := range intervals {
		err := stream(ctx, r.Record.File, r.Record.Name, iv.Start, iv.End, s.opts.chunkSize, emit)
		if errors.Is(err, errTranslationDone) {
			break
		}
		if err != nil {
			return bases, err
		}
	}

	if r.Translate {
		if aa = tr.Finish(aa[:0]); len(aa) > 0 {
			if _, err := body.Write(aa); err != nil {
				return bases, err
			}
		}
	}
	return bases, body.Close()
}

// Fetch validates and renders a sequence request in memory. It is meant
// for tools and tests; servers should stream with WriteTo.
func (s *Service) Fetch(ctx context.Context, req SequenceRequest) (*SequenceResponse, []byte, error) {
	resp, err := s.Sequence(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if _, err := resp.WriteTo(ctx, &buf); err != nil {
		return nil, nil, err
	}
	return resp, buf.Bytes(), nil
}
