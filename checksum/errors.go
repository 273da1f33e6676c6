package checksum

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no record is registered under a token.
	ErrNotFound = errors.New("checksum: not found")
	// ErrUnknownAlgorithm is returned for unrecognised algorithm names.
	ErrUnknownAlgorithm = errors.New("checksum: unknown algorithm")
	// ErrInvalidRecord is returned for records that cannot be indexed.
	ErrInvalidRecord = errors.New("checksum: invalid record")
	// ErrMismatch is returned when a recomputed digest differs.
	ErrMismatch = errors.New("checksum: digest mismatch")
)

// MismatchError describes a failed verification.
type MismatchError struct {
	ID        string
	Algorithm Algorithm
	Want      string
	Got       string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum: %s: %s is %s, computed %s", e.ID, e.Algorithm, e.Want, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}
