package billing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates an unknown document id.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyConverted indicates a second conversion attempt on the same
	// document. Conversion is a one-time business event, not idempotent.
	ErrAlreadyConverted = errors.New("document already converted to invoice")
	// ErrInvalidServiceParameter indicates a non-positive or mismatched
	// service parameter.
	ErrInvalidServiceParameter = errors.New("invalid service parameter")
	// ErrInvalidTariff indicates a non-positive unit tariff.
	ErrInvalidTariff = errors.New("invalid tariff")
)

// FieldError names a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`

	kind error
}

// ValidationError collects every offending field of a request, not just the
// first one encountered. It unwraps to the kind sentinels of its violations,
// so errors.Is(err, ErrInvalidServiceParameter) holds when a service
// parameter is among them.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	var kinds []error
	for _, f := range e.Fields {
		if f.kind != nil {
			kinds = append(kinds, f.kind)
		}
	}
	return kinds
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) addKind(field, message string, kind error) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message, kind: kind})
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }
