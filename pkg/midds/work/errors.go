package work

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy for musical works. Kept as a
// per-family enum rather than unified with the other MIDDS families.
type ErrorKind string

const (
	ErrInvalidTitle    ErrorKind = "invalid_title"
	ErrInvalidYear     ErrorKind = "invalid_year"
	ErrInvalidBpm      ErrorKind = "invalid_bpm"
	ErrInvalidVoices   ErrorKind = "invalid_voices"
	ErrInvalidIswc     ErrorKind = "invalid_iswc"
	ErrEmptyCreators   ErrorKind = "empty_creators"
	ErrTooManyCreators ErrorKind = "too_many_creators"
	ErrInvalidShareSum ErrorKind = "invalid_share_sum"
	ErrInvalidShare    ErrorKind = "invalid_share"
	ErrUnknownRole     ErrorKind = "unknown_role"
	ErrInvalidOpus     ErrorKind = "invalid_opus"
	ErrInvalidCatalog  ErrorKind = "invalid_catalog"
	ErrExceedsCapacity ErrorKind = "exceeds_capacity"
	ErrInvalidUtf8     ErrorKind = "invalid_utf8"
)

// Error is the musical-work entity error.
type Error struct {
	Kind  ErrorKind
	Field string
	Count int // populated for too_many kinds and share sums
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Count > 0:
		return fmt.Sprintf("musical work %s [%s]: %d", e.Field, e.Kind, e.Count)
	case e.cause != nil:
		return fmt.Sprintf("musical work %s [%s]: %v", e.Field, e.Kind, e.cause)
	}
	return fmt.Sprintf("musical work %s [%s]", e.Field, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// HasKind reports whether err is a work Error of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind == kind
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
