package codeforces

import "fmt"

// APIError is returned when the API answers with a status other than "OK".
type APIError struct {
	Status  string
	Comment string
}

func (e *APIError) Error() string {
	if e.Comment == "" {
		return fmt.Sprintf("codeforces API returned status %q", e.Status)
	}
	return fmt.Sprintf("codeforces API returned status %q: %s", e.Status, e.Comment)
}

// DecodeError is returned when a response body is not the expected JSON document.
type DecodeError struct {
	URL   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
