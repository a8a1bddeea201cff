package work

import (
	"time"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// ToRuntime validates the std form against the reference time, then
// projects it into the bounded runtime form. Conversion is total when
// validation passes.
func ToRuntime(w MusicalWork, ref time.Time) (Runtime, error) {
	if err := w.Validate(ref); err != nil {
		return Runtime{}, err
	}

	iswc, err := midds.ParseIswc(w.Iswc)
	if err != nil {
		return Runtime{}, wrapError(ErrInvalidIswc, "iswc", err)
	}
	title, err := bounded.NewString(w.Title, MaxTitleBytes)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "title", err)
	}

	rt := Runtime{
		Iswc:         iswc,
		Title:        title,
		CreationYear: w.CreationYear,
		Bpm:          copyU16(w.Bpm),
		Voices:       copyU16(w.Voices),
	}

	if w.Opus != "" {
		opus, err := bounded.NewString(w.Opus, MaxOpusBytes)
		if err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "opus", err)
		}
		rt.Opus = &opus
	}
	if w.CatalogNumber != "" {
		catalog, err := bounded.NewString(w.CatalogNumber, MaxCatalogBytes)
		if err != nil {
			return Runtime{}, wrapError(ErrExceedsCapacity, "catalog_number", err)
		}
		rt.CatalogNumber = &catalog
	}

	creators, err := bounded.VecFrom(w.Creators, MaxCreators)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "creators", err)
	}
	rt.Creators = creators
	return rt, nil
}

// FromRuntime widens the bounded form back to the permissive std form.
// Infallible: every runtime value is a valid std value.
func FromRuntime(rt Runtime) MusicalWork {
	w := MusicalWork{
		Iswc:         rt.Iswc.String(),
		Title:        rt.Title.String(),
		CreationYear: rt.CreationYear,
		Bpm:          copyU16(rt.Bpm),
		Voices:       copyU16(rt.Voices),
		Creators:     rt.Creators.Items(),
	}
	if rt.Opus != nil {
		w.Opus = rt.Opus.String()
	}
	if rt.CatalogNumber != nil {
		w.CatalogNumber = rt.CatalogNumber.String()
	}
	return w
}

func copyU16(v *uint16) *uint16 {
	if v == nil {
		return nil
	}
	o := *v
	return &o
}
