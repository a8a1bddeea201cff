package release

import (
	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// ToRuntime validates the std form, then projects it into the bounded
// runtime form. Conversion is total when validation passes.
func ToRuntime(r Release) (Runtime, error) {
	if err := r.Validate(); err != nil {
		return Runtime{}, err
	}

	title, err := bounded.NewString(r.Title, MaxTitleBytes)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "title", err)
	}
	date, err := midds.NewDate(r.Date.Year, r.Date.Month, r.Date.Day)
	if err != nil {
		return Runtime{}, wrapError(ErrInvalidDate, "date", err)
	}
	tracks, err := bounded.VecFrom(r.Tracks, MaxTracks)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "tracks", err)
	}

	rt := Runtime{
		Title:       title,
		ReleaseType: r.ReleaseType,
		Date:        date,
		Tracks:      tracks,
	}
	if r.Label != nil {
		label := *r.Label
		rt.Label = &label
	}
	if r.Upc != "" {
		upc, err := midds.ParseUpc(r.Upc)
		if err != nil {
			return Runtime{}, wrapError(ErrInvalidUpc, "upc", err)
		}
		rt.Upc = &upc
	}
	return rt, nil
}

// FromRuntime widens the bounded form back to the permissive std form.
// Infallible: every runtime value is a valid std value.
func FromRuntime(rt Runtime) Release {
	r := Release{
		Title:       rt.Title.String(),
		ReleaseType: rt.ReleaseType,
		Date:        Date{Year: rt.Date.Year(), Month: rt.Date.Month(), Day: rt.Date.Day()},
		Tracks:      rt.Tracks.Items(),
	}
	if rt.Label != nil {
		label := *rt.Label
		r.Label = &label
	}
	if rt.Upc != nil {
		r.Upc = rt.Upc.String()
	}
	return r
}
