package rangespec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadRequest is returned for malformed or unsatisfiable ranges.
	ErrBadRequest = errors.New("rangespec: bad range")
	// ErrUnsupportedRangeDirection is returned when a range ends before
	// it starts. Circular sequences are not supported.
	ErrUnsupportedRangeDirection = errors.New("rangespec: start is greater than end")
)

// Interval is a half-open interval [Start, End) of bases.
type Interval struct {
	Start int64
	End   int64
}

// Len returns the number of bases in the interval.
func (iv Interval) Len() int64 {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// Request carries the raw range inputs of a sequence request.
type Request struct {
	// Start and End are the query parameters, empty when absent.
	Start string
	End   string
	// Header is the Range header, empty when absent.
	Header string
}

// Plan is a validated list of intervals.
type Plan struct {
	// Intervals are in request order, never sorted or merged.
	Intervals []Interval
	// Partial is set when the Range header was used.
	Partial bool
	// Query is set when start or end query parameters were used.
	Query bool
}

// Len returns the total number of bases covered by the plan.
func (p Plan) Len() int64 {
	var n int64
	for _, iv := range p.Intervals {
		n += iv.Len()
	}
	return n
}

// Resolve validates req against a sequence of length bases.
// Every returned interval satisfies 0 <= Start < End <= length.
func Resolve(req Request, length int64) (Plan, error) {
	query := req.Start != "" || req.End != ""
	header := strings.TrimSpace(req.Header) != ""

	switch {
	case query && header:
		return Plan{}, fmt.Errorf("%w: Range header combined with start or end", ErrBadRequest)
	case query:
		iv, err := resolveQuery(req.Start, req.End, length)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Intervals: []Interval{iv}, Query: true}, nil
	case header:
		ivs, err := resolveHeader(req.Header, length)
		if err != nil {
			return Plan{}, err
		}
		return Plan{Intervals: ivs, Partial: true}, nil
	}

	if length == 0 {
		return Plan{}, nil
	}
	return Plan{Intervals: []Interval{{0, length}}}, nil
}

func resolveQuery(startParam, endParam string, length int64) (Interval, error) {
	start, end := int64(0), length

	var err error
	if startParam != "" {
		if start, err = parseOffset("start", startParam); err != nil {
			return Interval{}, err
		}
	}
	if endParam != "" {
		if end, err = parseOffset("end", endParam); err != nil {
			return Interval{}, err
		}
	}

	switch {
	case start == end:
		return Interval{}, fmt.Errorf("%w: empty range %d-%d", ErrBadRequest, start, end)
	case start > end:
		return Interval{}, fmt.Errorf("%w: %d > %d", ErrUnsupportedRangeDirection, start, end)
	case start >= length:
		return Interval{}, fmt.Errorf("%w: start %d beyond length %d", ErrBadRequest, start, length)
	}
	return Interval{start, min(end, length)}, nil
}

func resolveHeader(header string, length int64) ([]Interval, error) {
	spec := strings.TrimSpace(header)
	if unit, rest, ok := strings.Cut(spec, "="); ok {
		if strings.TrimSpace(unit) != "bytes" {
			return nil, fmt.Errorf("%w: unsupported unit %q", ErrBadRequest, unit)
		}
		spec = rest
	}

	parts := strings.Split(spec, ",")
	out := make([]Interval, 0, len(parts))
	for _, part := range parts {
		iv, err := resolvePair(strings.TrimSpace(part), length)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	return out, nil
}

// resolvePair converts an inclusive "a-b" pair into [a, b+1).
func resolvePair(pair string, length int64) (Interval, error) {
	first, last, ok := strings.Cut(pair, "-")
	if !ok || first == "" {
		return Interval{}, fmt.Errorf("%w: malformed range %q", ErrBadRequest, pair)
	}

	a, err := parseOffset("range start", first)
	if err != nil {
		return Interval{}, err
	}

	b := length - 1
	if last != "" {
		if b, err = parseOffset("range end", last); err != nil {
			return Interval{}, err
		}
		if a > b {
			return Interval{}, fmt.Errorf("%w: %d > %d", ErrUnsupportedRangeDirection, a, b)
		}
	}

	if a >= length {
		return Interval{}, fmt.Errorf("%w: start %d beyond length %d", ErrBadRequest, a, length)
	}
	return Interval{a, min(b, length-1) + 1}, nil
}

func parseOffset(what, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s %q is not a non-negative integer", ErrBadRequest, what, s)
	}
	return v, nil
}
