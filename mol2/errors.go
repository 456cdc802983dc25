package mol2

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPointRecord is wrapped by every RecordError.
	ErrInvalidPointRecord = errors.New("invalid point record")

	// ErrNoAtoms is returned for input without an ATOM section.
	ErrNoAtoms = errors.New("no @<TRIPOS>ATOM section")
)

// RecordError describes a malformed ATOM record.
type RecordError struct {
	Line  int    // 1-based line number in the input
	Field string // ordinal, label, x, y, z or "record"
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns both the sentinel and the underlying cause.
func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidPointRecord, e.Err}
}
