package faidx

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when an interval is empty or extends past
	// the end of the sequence.
	ErrOutOfRange = errors.New("faidx: interval out of range")
	// ErrUnknownSequence is returned when a name is not in the index.
	ErrUnknownSequence = errors.New("faidx: unknown sequence")
	// ErrUnknownFile is returned when no index is registered for a file.
	ErrUnknownFile = errors.New("faidx: no index registered for file")
	// ErrCorrupt is returned when file contents disagree with the index.
	ErrCorrupt = errors.New("faidx: sequence file does not match index")
)

// ParseError reports a malformed .fai line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("faidx: line %d: %s", e.Line, e.Msg)
}
