package track

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed failure taxonomy for tracks. Kept as a per-family
// enum rather than unified with the other MIDDS families.
type ErrorKind string

const (
	ErrInvalidTitle        ErrorKind = "invalid_title"
	ErrInvalidIsrc         ErrorKind = "invalid_isrc"
	ErrInvalidDuration     ErrorKind = "invalid_duration"
	ErrInvalidBpm          ErrorKind = "invalid_bpm"
	ErrInvalidYear         ErrorKind = "invalid_year"
	ErrInvalidPlace        ErrorKind = "invalid_place"
	ErrInvalidAlias        ErrorKind = "invalid_alias"
	ErrDuplicateAlias      ErrorKind = "duplicate_alias"
	ErrTooManyAliases      ErrorKind = "too_many_aliases"
	ErrUnknownGenre        ErrorKind = "unknown_genre"
	ErrDuplicateGenre      ErrorKind = "duplicate_genre"
	ErrTooManyGenres       ErrorKind = "too_many_genres"
	ErrTooManyProducers    ErrorKind = "too_many_producers"
	ErrTooManyPerformers   ErrorKind = "too_many_performers"
	ErrTooManyContributors ErrorKind = "too_many_contributors"
	ErrUnknownRole         ErrorKind = "unknown_role"
	ErrExceedsCapacity     ErrorKind = "exceeds_capacity"
	ErrInvalidUtf8         ErrorKind = "invalid_utf8"
)

// Error is the track entity error.
type Error struct {
	Kind  ErrorKind
	Field string
	Count int // populated for too_many kinds and range violations
	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Count > 0:
		return fmt.Sprintf("track %s [%s]: %d", e.Field, e.Kind, e.Count)
	case e.cause != nil:
		return fmt.Sprintf("track %s [%s]: %v", e.Field, e.Kind, e.cause)
	}
	return fmt.Sprintf("track %s [%s]", e.Field, e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// HasKind reports whether err is a track Error of the given kind.
func HasKind(err error, kind ErrorKind) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == kind
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
