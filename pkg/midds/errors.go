package midds

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed taxonomy for value-type validation failures.
type ErrorKind string

const (
	// KindInvalidPattern indicates the input does not match the syntactic
	// shape the standard mandates.
	KindInvalidPattern ErrorKind = "invalid_pattern"

	// KindOutOfRange indicates a numeric component outside its valid range.
	KindOutOfRange ErrorKind = "out_of_range"

	// KindBadChecksum indicates a well-formed identifier whose check digit
	// does not verify.
	KindBadChecksum ErrorKind = "bad_checksum"

	// KindUnknownEnumerant indicates a value outside a closed vocabulary.
	KindUnknownEnumerant ErrorKind = "unknown_enumerant"
)

// ValidationError carries the failure kind plus the field it applies to.
// Display is deterministic and locale-free.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s [%s]: %q", e.Field, e.Kind, e.Value)
	}
	return fmt.Sprintf("%s [%s]", e.Field, e.Kind)
}

func invalidPattern(field string) error {
	return &ValidationError{Kind: KindInvalidPattern, Field: field}
}

func outOfRange(field, value string) error {
	return &ValidationError{Kind: KindOutOfRange, Field: field, Value: value}
}

func badChecksum(field string) error {
	return &ValidationError{Kind: KindBadChecksum, Field: field}
}

func unknownEnumerant(field, value string) error {
	return &ValidationError{Kind: KindUnknownEnumerant, Field: field, Value: value}
}

// HasKind reports whether err is a ValidationError of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}
