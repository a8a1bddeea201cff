// Package release defines the Release MIDDS entity: the commercial
// grouping of tracks published under a single UPC-identified product.
package release

import (
	"errors"
	"unicode/utf8"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// Capacity bounds for release fields. These match the on-chain storage
// layout and must never grow without a chain migration.
const (
	MaxTitleBytes = 256
	MaxTracks     = 128
)

// Type is the closed release-format vocabulary.
type Type string

const (
	TypeSingle      Type = "single"
	TypeEP          Type = "ep"
	TypeAlbum       Type = "album"
	TypeCompilation Type = "compilation"
)

var typeIndex = map[Type]uint8{
	TypeSingle: 0, TypeEP: 1, TypeAlbum: 2, TypeCompilation: 3,
}

var typeByIndex = func() map[uint8]Type {
	m := make(map[uint8]Type, len(typeIndex))
	for t, idx := range typeIndex {
		m[idx] = t
	}
	return m
}()

// ParseType validates against the closed release-format vocabulary.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	if _, ok := typeIndex[t]; !ok {
		return "", newError(ErrUnknownType, "release_type")
	}
	return t, nil
}

func (t Type) String() string { return string(t) }

// ScaleIndex returns the on-chain discriminant for the release type.
func (t Type) ScaleIndex() uint8 { return typeIndex[t] }

// TypeFromScaleIndex resolves an on-chain discriminant back to a Type.
func TypeFromScaleIndex(idx uint8) (Type, error) {
	t, ok := typeByIndex[idx]
	if !ok {
		return "", newError(ErrUnknownType, "release_type")
	}
	return t, nil
}

// Date is the permissive component form of the release date. Validated
// through midds.NewDate.
type Date struct {
	Year  uint16 `json:"year"`
	Month uint8  `json:"month"`
	Day   uint8  `json:"day"`
}

// Release is the permissive std form.
//
// Invariants (checked by Validate, in canonical field order):
//   - Title: well-formed UTF-8, 1..256 bytes
//   - ReleaseType from the closed vocabulary
//   - Date a valid Gregorian calendar date
//   - Tracks: 1..128 entries
//   - Upc, when present, parses per pkg/midds
type Release struct {
	Title       string   `json:"title"`
	ReleaseType Type     `json:"release_type"`
	Date        Date     `json:"date"`
	Tracks      []uint64 `json:"tracks"`
	Label       *uint64  `json:"label,omitempty"`
	Upc         string   `json:"upc,omitempty"`
}

// Builder assembles a Release fluently.
type Builder struct {
	r Release
}

func NewBuilder(title string, releaseType Type, date Date) *Builder {
	return &Builder{r: Release{Title: title, ReleaseType: releaseType, Date: date}}
}

func (b *Builder) Track(trackID uint64) *Builder {
	b.r.Tracks = append(b.r.Tracks, trackID)
	return b
}

func (b *Builder) Label(entityID uint64) *Builder {
	b.r.Label = &entityID
	return b
}

func (b *Builder) Upc(upc string) *Builder {
	b.r.Upc = upc
	return b
}

// Build returns the std form without validating.
func (b *Builder) Build() Release { return b.r }

// TryBuild validates and returns the std form.
func (b *Builder) TryBuild() (Release, error) {
	if err := b.r.Validate(); err != nil {
		return Release{}, err
	}
	return b.r, nil
}

// Validate checks all invariants and reports the first violation in
// canonical field order. Releases carry no open-ended year bound, so no
// reference time is needed.
func (r Release) Validate() error {
	if err := checkText(r.Title, MaxTitleBytes, ErrInvalidTitle, "title"); err != nil {
		return err
	}
	if _, err := ParseType(string(r.ReleaseType)); err != nil {
		return err
	}
	if _, err := midds.NewDate(r.Date.Year, r.Date.Month, r.Date.Day); err != nil {
		return wrapError(ErrInvalidDate, "date", err)
	}
	if len(r.Tracks) == 0 {
		return newError(ErrEmptyTracks, "tracks")
	}
	if len(r.Tracks) > MaxTracks {
		return countError(ErrTooManyTracks, "tracks", len(r.Tracks))
	}
	if r.Upc != "" {
		if _, err := midds.ParseUpc(r.Upc); err != nil {
			return wrapError(ErrInvalidUpc, "upc", err)
		}
	}
	return nil
}

func checkText(raw string, max int, kind ErrorKind, field string) error {
	if !utf8.ValidString(raw) {
		return newError(ErrInvalidUtf8, field)
	}
	if _, err := bounded.NewString(raw, max); err != nil {
		if errors.Is(err, bounded.ErrInvalidUTF8) {
			return newError(ErrInvalidUtf8, field)
		}
		return wrapError(kind, field, err)
	}
	return nil
}
