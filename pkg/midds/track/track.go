// Package track defines the Track MIDDS entity: the recording-level record
// keyed by ISRC that links performers and producers to a musical work.
//
// Domain Purity: no I/O and no time.Now(). The reference time used for the
// recording-year upper bound is always passed in by the caller.
package track

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// Capacity and range bounds for track fields. These match the on-chain
// storage layout and must never grow without a chain migration.
const (
	MaxTitleBytes   = 256
	MaxPlaceBytes   = 128
	MaxTitleAliases = 16
	MaxGenres       = 5
	MaxProducers    = 64
	MaxPerformers   = 256
	MaxContributors = 256

	MinYear = 1900

	MinBpm = 20
	MaxBpm = 400

	MinDurationMs = 1
	MaxDurationMs = 36_000_000 // ten hours
)

// ContributorRef credits a party with a non-performing role on the
// recording.
type ContributorRef struct {
	PartyID uint64     `json:"party_id"`
	Role    midds.Role `json:"role"`
}

// Track is the permissive std form.
//
// Invariants (checked by Validate, in canonical field order):
//   - Title: well-formed UTF-8, 1..256 bytes
//   - Isrc parses per pkg/midds
//   - DurationMs: 1..36_000_000
//   - Bpm, when present: 20..400
//   - RecordingYear: 1900..referenceYear+1
//   - RecordingPlace, when present: 1..128 bytes
//   - TitleAliases: at most 16 pairwise-distinct, each 1..256 bytes
//   - Genres: at most 5 distinct entries from the closed vocabulary
//   - Producers <= 64, Performers <= 256, Contributors <= 256
type Track struct {
	Isrc           string           `json:"isrc"`
	Title          string           `json:"title"`
	TitleAliases   []string         `json:"title_aliases,omitempty"`
	DurationMs     uint32           `json:"duration_ms"`
	Bpm            *uint16          `json:"bpm,omitempty"`
	RecordingYear  uint16           `json:"recording_year"`
	RecordingPlace string           `json:"recording_place,omitempty"`
	Genres         []midds.Genre    `json:"genres,omitempty"`
	Producers      []uint64         `json:"producers,omitempty"`
	Performers     []uint64         `json:"performers,omitempty"`
	Contributors   []ContributorRef `json:"contributors,omitempty"`
	MusicalWork    uint64           `json:"musical_work"`
}

// Builder assembles a Track fluently.
type Builder struct {
	t Track
}

func NewBuilder(isrc, title string, durationMs uint32, recordingYear uint16) *Builder {
	return &Builder{t: Track{
		Isrc:          isrc,
		Title:         title,
		DurationMs:    durationMs,
		RecordingYear: recordingYear,
	}}
}

func (b *Builder) TitleAlias(alias string) *Builder {
	b.t.TitleAliases = append(b.t.TitleAliases, alias)
	return b
}

func (b *Builder) Bpm(bpm uint16) *Builder {
	b.t.Bpm = &bpm
	return b
}

func (b *Builder) RecordingPlace(place string) *Builder {
	b.t.RecordingPlace = place
	return b
}

func (b *Builder) Genre(genre midds.Genre) *Builder {
	b.t.Genres = append(b.t.Genres, genre)
	return b
}

func (b *Builder) Producer(partyID uint64) *Builder {
	b.t.Producers = append(b.t.Producers, partyID)
	return b
}

func (b *Builder) Performer(partyID uint64) *Builder {
	b.t.Performers = append(b.t.Performers, partyID)
	return b
}

func (b *Builder) Contributor(partyID uint64, role midds.Role) *Builder {
	b.t.Contributors = append(b.t.Contributors, ContributorRef{PartyID: partyID, Role: role})
	return b
}

func (b *Builder) MusicalWork(workID uint64) *Builder {
	b.t.MusicalWork = workID
	return b
}

// Build returns the std form without validating.
func (b *Builder) Build() Track { return b.t }

// TryBuild validates against the reference time and returns the std form.
func (b *Builder) TryBuild(ref time.Time) (Track, error) {
	if err := b.t.Validate(ref); err != nil {
		return Track{}, err
	}
	return b.t, nil
}

// Validate checks all invariants and reports the first violation in
// canonical field order.
func (t Track) Validate(ref time.Time) error {
	if err := checkText(t.Title, MaxTitleBytes, ErrInvalidTitle, "title"); err != nil {
		return err
	}
	if _, err := midds.ParseIsrc(t.Isrc); err != nil {
		return wrapError(ErrInvalidIsrc, "isrc", err)
	}
	if t.DurationMs < MinDurationMs || t.DurationMs > MaxDurationMs {
		return countError(ErrInvalidDuration, "duration_ms", int(t.DurationMs))
	}
	if t.Bpm != nil && (*t.Bpm < MinBpm || *t.Bpm > MaxBpm) {
		return countError(ErrInvalidBpm, "bpm", int(*t.Bpm))
	}
	maxYear := uint16(ref.UTC().Year() + 1)
	if t.RecordingYear < MinYear || t.RecordingYear > maxYear {
		return countError(ErrInvalidYear, "recording_year", int(t.RecordingYear))
	}
	if t.RecordingPlace != "" {
		if err := checkText(t.RecordingPlace, MaxPlaceBytes, ErrInvalidPlace, "recording_place"); err != nil {
			return err
		}
	}
	if len(t.TitleAliases) > MaxTitleAliases {
		return countError(ErrTooManyAliases, "title_aliases", len(t.TitleAliases))
	}
	seenAliases := make(map[string]struct{}, len(t.TitleAliases))
	for _, alias := range t.TitleAliases {
		if err := checkText(alias, MaxTitleBytes, ErrInvalidAlias, "title_aliases"); err != nil {
			return err
		}
		if _, dup := seenAliases[alias]; dup {
			return newError(ErrDuplicateAlias, "title_aliases")
		}
		seenAliases[alias] = struct{}{}
	}
	if len(t.Genres) > MaxGenres {
		return countError(ErrTooManyGenres, "genres", len(t.Genres))
	}
	seenGenres := make(map[midds.Genre]struct{}, len(t.Genres))
	for i, genre := range t.Genres {
		if _, err := midds.ParseGenre(string(genre)); err != nil {
			return wrapError(ErrUnknownGenre, fmt.Sprintf("genres[%d]", i), err)
		}
		if _, dup := seenGenres[genre]; dup {
			return newError(ErrDuplicateGenre, "genres")
		}
		seenGenres[genre] = struct{}{}
	}
	if len(t.Producers) > MaxProducers {
		return countError(ErrTooManyProducers, "producers", len(t.Producers))
	}
	if len(t.Performers) > MaxPerformers {
		return countError(ErrTooManyPerformers, "performers", len(t.Performers))
	}
	if len(t.Contributors) > MaxContributors {
		return countError(ErrTooManyContributors, "contributors", len(t.Contributors))
	}
	for i, c := range t.Contributors {
		if _, err := midds.ParseRole(string(c.Role)); err != nil {
			return wrapError(ErrUnknownRole, fmt.Sprintf("contributors[%d].role", i), err)
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
