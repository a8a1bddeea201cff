// Package work defines the MusicalWork MIDDS entity: the composition-level
// record that carries the ISWC, creator allocation and per-work metadata.
//
// Domain Purity: no I/O and no time.Now(). The reference time used for the
// creation-year upper bound is always passed in by the caller.
package work

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// Capacity and range bounds for musical-work fields. These match the
// on-chain storage layout and must never grow without a chain migration.
const (
	MaxTitleBytes   = 256
	MaxOpusBytes    = 32
	MaxCatalogBytes = 32
	MaxCreators     = 64

	MinYear = 1900

	MinBpm = 20
	MaxBpm = 400

	MinVoices = 1
	MaxVoices = 64

	// ShareTotal is the exact permille sum the creator allocation must reach.
	ShareTotal = 1000
)

// CreatorRef allocates a permille share of the work to a party. The party
// reference is an opaque identifier resolved by the registry; the entity
// layer never dereferences it.
type CreatorRef struct {
	PartyID       uint64     `json:"party_id"`
	Role          midds.Role `json:"role"`
	SharePermille uint16     `json:"share_permille"`
}

// MusicalWork is the permissive std form.
//
// Invariants (checked by Validate, in canonical field order):
//   - Title: well-formed UTF-8, 1..256 bytes
//   - CreationYear: 1900..referenceYear+1
//   - Bpm, when present: 20..400
//   - Voices, when present: 1..64
//   - Iswc parses per pkg/midds
//   - Creators: 1..64 entries, roles from the closed vocabulary,
//     each share within 0..1000, shares summing to exactly 1000
//   - Opus / CatalogNumber, when present: 1..32 bytes
type MusicalWork struct {
	Iswc          string       `json:"iswc"`
	Title         string       `json:"title"`
	CreationYear  uint16       `json:"creation_year"`
	Bpm           *uint16      `json:"bpm,omitempty"`
	Voices        *uint16      `json:"voices,omitempty"`
	Opus          string       `json:"opus,omitempty"`
	CatalogNumber string       `json:"catalog_number,omitempty"`
	Creators      []CreatorRef `json:"creators"`
}

// Builder assembles a MusicalWork fluently.
type Builder struct {
	w MusicalWork
}

func NewBuilder(iswc, title string, creationYear uint16) *Builder {
	return &Builder{w: MusicalWork{Iswc: iswc, Title: title, CreationYear: creationYear}}
}

func (b *Builder) Bpm(bpm uint16) *Builder {
	b.w.Bpm = &bpm
	return b
}

func (b *Builder) Voices(voices uint16) *Builder {
	b.w.Voices = &voices
	return b
}

func (b *Builder) Opus(opus string) *Builder {
	b.w.Opus = opus
	return b
}

func (b *Builder) CatalogNumber(catalog string) *Builder {
	b.w.CatalogNumber = catalog
	return b
}

func (b *Builder) Creator(partyID uint64, role midds.Role, sharePermille uint16) *Builder {
	b.w.Creators = append(b.w.Creators, CreatorRef{
		PartyID:       partyID,
		Role:          role,
		SharePermille: sharePermille,
	})
	return b
}

// Build returns the std form without validating.
func (b *Builder) Build() MusicalWork { return b.w }

// TryBuild validates against the reference time and returns the std form.
func (b *Builder) TryBuild(ref time.Time) (MusicalWork, error) {
	if err := b.w.Validate(ref); err != nil {
		return MusicalWork{}, err
	}
	return b.w, nil
}

// Validate checks all invariants and reports the first violation in
// canonical field order: title, year, bpm, voices, iswc, creators-empty,
// share-sum, opus, catalog.
func (w MusicalWork) Validate(ref time.Time) error {
	if err := checkText(w.Title, MaxTitleBytes, ErrInvalidTitle, "title"); err != nil {
		return err
	}
	maxYear := uint16(ref.UTC().Year() + 1)
	if w.CreationYear < MinYear || w.CreationYear > maxYear {
		return countError(ErrInvalidYear, "creation_year", int(w.CreationYear))
	}
	if w.Bpm != nil && (*w.Bpm < MinBpm || *w.Bpm > MaxBpm) {
		return countError(ErrInvalidBpm, "bpm", int(*w.Bpm))
	}
	if w.Voices != nil && (*w.Voices < MinVoices || *w.Voices > MaxVoices) {
		return countError(ErrInvalidVoices, "voices", int(*w.Voices))
	}
	if _, err := midds.ParseIswc(w.Iswc); err != nil {
		return wrapError(ErrInvalidIswc, "iswc", err)
	}
	if len(w.Creators) == 0 {
		return newError(ErrEmptyCreators, "creators")
	}
	if len(w.Creators) > MaxCreators {
		return countError(ErrTooManyCreators, "creators", len(w.Creators))
	}
	sum := 0
	for i, c := range w.Creators {
		if _, err := midds.ParseRole(string(c.Role)); err != nil {
			return wrapError(ErrUnknownRole, fmt.Sprintf("creators[%d].role", i), err)
		}
		if c.SharePermille > ShareTotal {
			return countError(ErrInvalidShare, fmt.Sprintf("creators[%d].share_permille", i), int(c.SharePermille))
		}
		sum += int(c.SharePermille)
	}
	if sum != ShareTotal {
		return countError(ErrInvalidShareSum, "creators", sum)
	}
	if w.Opus != "" {
		if err := checkText(w.Opus, MaxOpusBytes, ErrInvalidOpus, "opus"); err != nil {
			return err
		}
	}
	if w.CatalogNumber != "" {
		if err := checkText(w.CatalogNumber, MaxCatalogBytes, ErrInvalidCatalog, "catalog_number"); err != nil {
			return err
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
