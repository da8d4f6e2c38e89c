package models

import (
	"errors"
	"fmt"
)

// Row parse failure kinds. A *ParseError unwraps to exactly one of these.
var (
	// ErrFieldCount indicates a row whose arity differs from the mode's column count.
	ErrFieldCount = errors.New("field count mismatch")

	// ErrNumeric indicates a field that must be a float but is not.
	ErrNumeric = errors.New("numeric parse failure")

	// ErrLabelSet indicates the truth column does not hold exactly two classes,
	// or the requested positive label is not one of them.
	ErrLabelSet = errors.New("invalid label set")
)

// ParseError describes why a data row could not be turned into a typed row.
// Row is 1-based and counts data rows only (the header is row 0). Column is
// 0-based and is -1 when the failure is not tied to a single field.
type ParseError struct {
	Row    int
	Column int
	Value  string
	Kind   error
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Column < 0 && e.Err != nil:
		return fmt.Sprintf("row %d: %v: %v", e.Row, e.Kind, e.Err)
	case e.Column < 0:
		return fmt.Sprintf("row %d: %v", e.Row, e.Kind)
	default:
		return fmt.Sprintf("row %d, column %d (%q): %v", e.Row, e.Column+1, e.Value, e.Kind)
	}
}

// Unwrap lets callers match the failure kind with errors.Is.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}
