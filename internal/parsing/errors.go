// Package parsing extracts ladder records from the A2OJ ladder pages.
// Every assumption about the page layout (table order, column order, link shapes) lives
// in this package.
package parsing

import (
	"errors"
	"fmt"
)

// Reasons a table row is skipped.
var (
	ErrHeaderRow          = errors.New("header row")
	ErrTooFewCells        = errors.New("too few cells")
	ErrNonNumericPosition = errors.New("non-numeric position")
	ErrNonNumericID       = errors.New("non-numeric ladder id")
	ErrNonNumericCount    = errors.New("non-numeric problem count")
	ErrMissingLink        = errors.New("missing link")
	ErrMissingName        = errors.New("missing ladder name")
)

// ParseError represents a failure to read a whole document.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// LinkError reports a problem link that matches none of the known URL shapes.
type LinkError struct {
	Href  string
	Cause error
}

func (e *LinkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unrecognized problem link %q: %v", e.Href, e.Cause)
	}
	return fmt.Sprintf("unrecognized problem link %q", e.Href)
}

func (e *LinkError) Unwrap() error {
	return e.Cause
}

// RowError records why a single table row was skipped. Table and Row are zero-based.
type RowError struct {
	Table int
	Row   int
	Cause error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("table %d row %d skipped: %v", e.Table, e.Row, e.Cause)
}

func (e *RowError) Unwrap() error {
	return e.Cause
}

// IsLayoutRow reports whether err marks a row that is part of the page layout (headers,
// spacers) rather than a malformed data row.
func IsLayoutRow(err error) bool {
	return errors.Is(err, ErrHeaderRow) ||
		errors.Is(err, ErrTooFewCells) ||
		errors.Is(err, ErrNonNumericPosition)
}
