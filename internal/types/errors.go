//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned by the record constructors when required fields are
// missing or malformed.
type ValidationError struct {
	Record string
	Errors []FieldError
}

// FieldError is a single failed constraint.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("invalid %s: %s", e.Record, strings.Join(parts, "; "))
}

// newValidationError converts validator output into a ValidationError. It returns nil
// when err is nil.
func newValidationError(record string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{
			Record: record,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}

	ve := &ValidationError{Record: record, Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		ve.Errors = append(ve.Errors, FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed %q (got %v)", msg, fe.Value()),
		})
	}
	return ve
}
