package procare

import (
	"errors"
	"fmt"

	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/fingerprint"
	"github.com/kimeguida/ProCare/index"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/metric"
	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/mol2"
)

var (
	// ErrEmptySet is returned when either compared set has no points.
	ErrEmptySet = model.ErrEmptySet

	// ErrDivisionUndefined is returned when a score has a zero denominator.
	ErrDivisionUndefined = metric.ErrDivisionUndefined

	// ErrInvalidPointRecord is returned for malformed cavity records.
	ErrInvalidPointRecord = mol2.ErrInvalidPointRecord

	// ErrInvalidThreshold is returned for a negative or NaN threshold.
	ErrInvalidThreshold = match.ErrInvalidThreshold

	// ErrUnknownPolicy is returned for an unrecognised policy name.
	ErrUnknownPolicy = match.ErrUnknownPolicy

	// ErrUnknownRule is returned for an unrecognised fingerprint rule.
	ErrUnknownRule = fingerprint.ErrUnknownRule

	// ErrNotFound is returned when a cavity blob does not exist.
	ErrNotFound = blobstore.ErrNotFound

	// ErrInvalidWeights is returned when Tversky weights are negative.
	ErrInvalidWeights = errors.New("tversky weights must be non-negative")
)

// InvalidPointRecordError reports the line and field of a malformed
// cavity record.
//
// The original error can be accessed via errors.Unwrap.
type InvalidPointRecordError struct {
	Line  int
	Field string
	cause error
}

func (e *InvalidPointRecordError) Error() string { return e.cause.Error() }

func (e *InvalidPointRecordError) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a query of the wrong dimensionality
// reached a neighbour index.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var re *mol2.RecordError
	if errors.As(err, &re) {
		return &InvalidPointRecordError{Line: re.Line, Field: re.Field, cause: err}
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}

	if errors.Is(err, mol2.ErrNoAtoms) {
		return fmt.Errorf("%w: %w", ErrInvalidPointRecord, err)
	}

	return err
}
