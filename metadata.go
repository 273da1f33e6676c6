package refget

import (
	"context"
	"time"

	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/negotiate"
)

// MetadataRequest carries the raw inputs of a metadata request.
type MetadataRequest struct {
	ID        string
	Algorithm string
	Accept    string
}

// MetadataResponse is an encoded metadata document.
type MetadataResponse struct {
	Record      *checksum.Record
	ContentType string
	Body        []byte
}

// Metadata resolves the identifier and encodes its metadata document.
func (s *Service) Metadata(ctx context.Context, req MetadataRequest) (*MetadataResponse, error) {
	start := time.Now()
	resp, err := s.metadata(req)

	id := req.ID
	if resp != nil {
		id = resp.Record.ID
	}
	s.opts.logger.LogMetadata(ctx, id, err)
	s.opts.metricsCollector.RecordMetadata(time.Since(start), err)
	return resp, err
}

func (s *Service) metadata(req MetadataRequest) (*MetadataResponse, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	rec, err := s.resolve(req.Algorithm, req.ID)
	if err != nil {
		return nil, err
	}

	rep, err := negotiate.Negotiate(negotiate.KindMetadata, req.Accept)
	if err != nil {
		return nil, translateError(err)
	}

	body, err := s.opts.codec.Marshal(checksum.Envelope{Metadata: rec.Metadata()})
	if err != nil {
		return nil, err
	}
	return &MetadataResponse{Record: rec, ContentType: rep.ContentType(), Body: body}, nil
}
