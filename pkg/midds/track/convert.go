package track

import (
	"time"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// ToRuntime validates the std form against the reference time, then
// projects it into the bounded runtime form. Conversion is total when
// validation passes.
func ToRuntime(t Track, ref time.Time) (Runtime, error) {
	if err := t.Validate(ref); err != nil {
		return Runtime{}, err
	}

	isrc, err := midds.ParseIsrc(t.Isrc)
	if err != nil {
		return Runtime{}, wrapError(ErrInvalidIsrc, "isrc", err)
	}
	title, err := bounded.NewString(t.Title, MaxTitleBytes)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "title", err)
	}

	rt := Runtime{
		Isrc:          isrc,
		Title:         title,
		DurationMs:    t.DurationMs,
		RecordingYear: t.RecordingYear,
		MusicalWork:   t.MusicalWork,
	}
	if t.Bpm != nil {
		bpm := *t.Bpm
		rt.Bpm = &bpm
	}
	if t.RecordingPlace != "" {
		place, err := bounded.NewString(t.RecordingPlace, MaxPlaceBytes)
		if err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "recording_place", err)
		}
		rt.RecordingPlace = &place
	}

	aliases := bounded.NewSet[bounded.String](MaxTitleAliases)
	for _, raw := range t.TitleAliases {
		alias, err := bounded.NewString(raw, MaxTitleBytes)
		if err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "title_aliases", err)
		}
		if err := aliases.Push(alias, bounded.DuplicateRejected); err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "title_aliases", err)
		}
	}
	rt.TitleAliases = aliases

	genres := bounded.NewSet[midds.Genre](MaxGenres)
	for _, g := range t.Genres {
		if err := genres.Push(g, bounded.DuplicateRejected); err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "genres", err)
		}
	}
	rt.Genres = genres

	if rt.Producers, err = bounded.VecFrom(t.Producers, MaxProducers); err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "producers", err)
	}
	if rt.Performers, err = bounded.VecFrom(t.Performers, MaxPerformers); err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "performers", err)
	}
	if rt.Contributors, err = bounded.VecFrom(t.Contributors, MaxContributors); err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "contributors", err)
	}
	return rt, nil
}

// FromRuntime widens the bounded form back to the permissive std form.
// Infallible: every runtime value is a valid std value.
func FromRuntime(rt Runtime) Track {
	t := Track{
		Isrc:          rt.Isrc.String(),
		Title:         rt.Title.String(),
		DurationMs:    rt.DurationMs,
		RecordingYear: rt.RecordingYear,
		MusicalWork:   rt.MusicalWork,
	}
	if rt.Bpm != nil {
		bpm := *rt.Bpm
		t.Bpm = &bpm
	}
	if rt.RecordingPlace != nil {
		t.RecordingPlace = rt.RecordingPlace.String()
	}
	for _, alias := range rt.TitleAliases.Items() {
		t.TitleAliases = append(t.TitleAliases, alias.String())
	}
	if rt.Genres.Len() > 0 {
		t.Genres = rt.Genres.Items()
	}
	if rt.Producers.Len() > 0 {
		t.Producers = rt.Producers.Items()
	}
	if rt.Performers.Len() > 0 {
		t.Performers = rt.Performers.Items()
	}
	if rt.Contributors.Len() > 0 {
		t.Contributors = rt.Contributors.Items()
	}
	return t
}
