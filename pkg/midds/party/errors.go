package party

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy for party identifiers. Kept as a
// per-family enum rather than unified with the other MIDDS families.
type ErrorKind string

const (
	ErrInvalidName       ErrorKind = "invalid_name"
	ErrInvalidIpi        ErrorKind = "invalid_ipi"
	ErrInvalidIsni       ErrorKind = "invalid_isni"
	ErrNotCanonical      ErrorKind = "not_canonical"
	ErrInvalidAlias      ErrorKind = "invalid_alias"
	ErrDuplicateAlias    ErrorKind = "duplicate_alias"
	ErrTooManyAliases    ErrorKind = "too_many_aliases"
	ErrUnknownKind       ErrorKind = "unknown_kind"
	ErrUnknownEntityType ErrorKind = "unknown_entity_type"
	ErrExceedsCapacity   ErrorKind = "exceeds_capacity"
	ErrInvalidUtf8       ErrorKind = "invalid_utf8"
)

// Error is the party-family entity error. Display is deterministic and
// locale-free; lower-layer causes stay reachable through Unwrap.
type Error struct {
	Kind  ErrorKind
	Field string
	Count int // populated for too_many kinds
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Count > 0:
		return fmt.Sprintf("party %s [%s]: %d", e.Field, e.Kind, e.Count)
	case e.cause != nil:
		return fmt.Sprintf("party %s [%s]: %v", e.Field, e.Kind, e.cause)
	}
	return fmt.Sprintf("party %s [%s]", e.Field, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// HasKind reports whether err is a party Error of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, field string) *Error {
	return &Error{Kind: kind, Field: field}
}

func wrapError(kind ErrorKind, field string, cause error) *Error {
	return &Error{Kind: kind, Field: field, cause: cause}
}

func tooMany(kind ErrorKind, field string, count int) *Error {
	return &Error{Kind: kind, Field: field, Count: count}
}
