package refget

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hupe1980/refget/checksum"
	"github.com/hupe1980/refget/faidx"
	"github.com/hupe1980/refget/negotiate"
	"github.com/hupe1980/refget/rangespec"
)

var (
	// ErrNotFound is returned when no sequence matches an identifier.
	ErrNotFound = errors.New("refget: sequence not found")
	// ErrBadRequest is returned for malformed request parameters.
	ErrBadRequest = errors.New("refget: bad request")
	// ErrUnsupportedRepresentation is returned when the Accept header
	// names no representation the endpoint can produce.
	ErrUnsupportedRepresentation = errors.New("refget: unsupported representation")
	// ErrUnsupportedRangeDirection is returned for ranges that end
	// before they start.
	ErrUnsupportedRangeDirection = errors.New("refget: unsupported range direction")
	// ErrClosed is returned after the Service has been closed.
	ErrClosed = errors.New("refget: service closed")
)

// StatusCode maps an error to its HTTP status.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupportedRepresentation):
		return http.StatusRequestedRangeNotSatisfiable
	case errors.Is(err, ErrUnsupportedRangeDirection):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, checksum.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, negotiate.ErrUnsupported):
		return fmt.Errorf("%w: %w", ErrUnsupportedRepresentation, err)
	case errors.Is(err, rangespec.ErrUnsupportedRangeDirection):
		return fmt.Errorf("%w: %w", ErrUnsupportedRangeDirection, err)
	case errors.Is(err, rangespec.ErrBadRequest), errors.Is(err, faidx.ErrOutOfRange):
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return err
}
