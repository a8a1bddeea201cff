package certificate

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy of the generator.
type ErrorKind string

const (
	ErrUnsupportedField    ErrorKind = "unsupported_field"
	ErrPaginationOverflow  ErrorKind = "pagination_overflow"
	ErrMeasureInconsistent ErrorKind = "measure_inconsistent"
	ErrInvalidTimestamp    ErrorKind = "invalid_timestamp"
)

// Error is the generator error.
type Error struct {
	Kind  ErrorKind
	Field string // populated for unsupported_field
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("certificate %s [%s]", e.Field, e.Kind)
	}
	return fmt.Sprintf("certificate [%s]", e.Kind)
}

// HasKind reports whether err is a certificate Error of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
