// Package bounded provides capacity-bounded containers for values destined
// for on-chain storage. Every MIDDS runtime field is built from one of these
// primitives, so capacity violations are caught at construction time rather
// than at encoding time.
//
// Domain Purity: this package performs no I/O and holds no global state.
// Values are immutable after construction except through Push, which either
// succeeds fully or leaves the container unchanged.
package bounded

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for bound violations. Entity layers wrap these with field
// context before surfacing them to callers.
var (
	ErrEmpty       = errors.New("value is empty")
	ErrCapacity    = errors.New("capacity exceeded")
	ErrDuplicate   = errors.New("duplicate element")
	ErrInvalidUTF8 = errors.New("invalid utf-8")
)

// IsBoundError reports whether err is one of the bound-violation
// sentinels. Callers use it to keep transport failures distinct from
// violated bounds when both can come out of the same decode path.
func IsBoundError(err error) bool {
	return errors.Is(err, ErrEmpty) ||
		errors.Is(err, ErrCapacity) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInvalidUTF8)
}

// DuplicatePolicy selects how Set.Push treats an element already present.
type DuplicatePolicy int

const (
	// DuplicateRejected fails the push and leaves the set unchanged.
	// All MIDDS call sites use this policy.
	DuplicateRejected DuplicatePolicy = iota
	// DuplicateIgnored drops the element silently.
	DuplicateIgnored
)

// String is a UTF-8 byte sequence with 1 <= len <= max bytes.
//
// Invariants:
//   - Well-formed UTF-8, no interior NUL
//   - Byte length within (0, max]
type String struct {
	value string
	max   int
}

// NewString validates raw input against the byte capacity.
func NewString(raw string, max int) (String, error) {
	if raw == "" {
		return String{}, ErrEmpty
	}
	if len(raw) > max {
		return String{}, ErrCapacity
	}
	if !utf8.ValidString(raw) || strings.ContainsRune(raw, 0) {
		return String{}, ErrInvalidUTF8
	}
	return String{value: raw, max: max}, nil
}

// MustString creates a String, panicking if invalid. Test helper.
func MustString(raw string, max int) String {
	s, err := NewString(raw, max)
	if err != nil {
		panic(err)
	}
	return s
}

func (s String) String() string { return s.value }

// Bytes returns the UTF-8 bytes. The returned slice is a copy.
func (s String) Bytes() []byte { return []byte(s.value) }

// Len reports the byte length, not the rune count.
func (s String) Len() int { return len(s.value) }

func (s String) Max() int { return s.max }

func (s String) IsZero() bool { return s.value == "" }

// Vec is an ordered sequence with len <= max.
type Vec[T any] struct {
	items []T
	max   int
}

// NewVec returns an empty Vec with the given capacity bound.
func NewVec[T any](max int) Vec[T] {
	return Vec[T]{max: max}
}

// VecFrom copies items into a bounded Vec, failing on capacity overflow.
func VecFrom[T any](items []T, max int) (Vec[T], error) {
	if len(items) > max {
		return Vec[T]{}, ErrCapacity
	}
	v := Vec[T]{items: make([]T, len(items)), max: max}
	copy(v.items, items)
	return v, nil
}

// Push appends an item, failing when capacity is exhausted.
func (v *Vec[T]) Push(item T) error {
	if len(v.items) >= v.max {
		return ErrCapacity
	}
	v.items = append(v.items, item)
	return nil
}

// Items returns a copy of the underlying slice.
func (v Vec[T]) Items() []T {
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

func (v Vec[T]) Len() int { return len(v.items) }

func (v Vec[T]) Max() int { return v.max }

// Set is a Vec whose elements are pairwise distinct. Insertion order is
// preserved but immaterial to equality.
type Set[T comparable] struct {
	vec Vec[T]
}

// NewSet returns an empty Set with the given capacity bound.
func NewSet[T comparable](max int) Set[T] {
	return Set[T]{vec: NewVec[T](max)}
}

// SetFrom copies items into a bounded Set under the given duplicate policy.
// With DuplicateRejected any repeated element fails construction; with
// DuplicateIgnored repeats are dropped.
func SetFrom[T comparable](items []T, max int, policy DuplicatePolicy) (Set[T], error) {
	s := NewSet[T](max)
	for _, item := range items {
		if err := s.Push(item, policy); err != nil {
			return Set[T]{}, err
		}
	}
	return s, nil
}

// Push inserts an element. Fails on capacity exhaustion; duplicate handling
// follows the policy. A failed push leaves the set unchanged.
func (s *Set[T]) Push(item T, policy DuplicatePolicy) error {
	for _, existing := range s.vec.items {
		if existing == item {
			if policy == DuplicateIgnored {
				return nil
			}
			return ErrDuplicate
		}
	}
	return s.vec.Push(item)
}

func (s Set[T]) Contains(item T) bool {
	for _, existing := range s.vec.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Items returns a copy of the elements in insertion order.
func (s Set[T]) Items() []T { return s.vec.Items() }

func (s Set[T]) Len() int { return s.vec.Len() }

func (s Set[T]) Max() int { return s.vec.Max() }

// Equal reports multiset equality on elements, independent of order.
func (s Set[T]) Equal(other Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, item := range s.vec.items {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}
