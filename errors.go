package chart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when a canvas width or height is not positive.
	ErrInvalidSize = errors.New("chart: canvas size must be positive")

	// ErrMalformedRecord is returned when a data point lacks a value the
	// chart needs. Use errors.As with *MalformedRecordError for details.
	ErrMalformedRecord = errors.New("chart: malformed record")
)

// MalformedRecordError locates a data point that is missing a field or
// carries a non-finite value. It wraps ErrMalformedRecord.
type MalformedRecordError struct {
	// Version and Channel are empty for burn-up records.
	Version string
	Channel string

	// Index is the position of the point within its series.
	Index int

	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	if e.Version == "" && e.Channel == "" {
		return fmt.Sprintf("chart: malformed record %d: field %q %s", e.Index, e.Field, reason)
	}
	return fmt.Sprintf("chart: malformed record %s/%s[%d]: field %q %s",
		e.Version, e.Channel, e.Index, e.Field, reason)
}

// Unwrap returns ErrMalformedRecord.
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}
