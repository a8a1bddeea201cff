package release

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy for releases. Kept as a
// per-family enum rather than unified with the other MIDDS families.
type ErrorKind string

const (
	ErrInvalidTitle    ErrorKind = "invalid_title"
	ErrUnknownType     ErrorKind = "unknown_release_type"
	ErrInvalidDate     ErrorKind = "invalid_date"
	ErrEmptyTracks     ErrorKind = "empty_tracks"
	ErrTooManyTracks   ErrorKind = "too_many_tracks"
	ErrInvalidUpc      ErrorKind = "invalid_upc"
	ErrExceedsCapacity ErrorKind = "exceeds_capacity"
	ErrInvalidUtf8     ErrorKind = "invalid_utf8"
)

// Error is the release entity error.
type Error struct {
	Kind  ErrorKind
	Field string
	Count int // populated for too_many kinds
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Count > 0:
		return fmt.Sprintf("release %s [%s]: %d", e.Field, e.Kind, e.Count)
	case e.cause != nil:
		return fmt.Sprintf("release %s [%s]: %v", e.Field, e.Kind, e.cause)
	}
	return fmt.Sprintf("release %s [%s]", e.Field, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// HasKind reports whether err is a release Error of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}

func newError(kind ErrorKind, field string) *Error {
	return &Error{Kind: kind, Field: field}
}

func wrapError(kind ErrorKind, field string, cause error) *Error {
	return &Error{Kind: kind, Field: field, cause: cause}
}

func countError(kind ErrorKind, field string, count int) *Error {
	return &Error{Kind: kind, Field: field, Count: count}
}
