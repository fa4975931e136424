package scraper

import "fmt"

// PageError records a ladder page that could not be fetched or parsed.
type PageError struct {
	LadderID int
	URL      string
	Cause    error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("ladder %d (%s): %v", e.LadderID, e.URL, e.Cause)
}

func (e *PageError) Unwrap() error {
	return e.Cause
}

// IncompleteError is returned by Run when some ladder pages were skipped.
type IncompleteError struct {
	Failed []*PageError
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("scrape incomplete: %d ladder page(s) failed", len(e.Failed))
}

// Unwrap exposes every page failure to errors.Is and errors.As.
func (e *IncompleteError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}
