package party

import (
	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// ToRuntime validates the std form and projects it into the bounded runtime
// form. Conversion is total when validation passes: any capacity overflow
// surfaced here indicates a bound the validator missed and is reported as
// ExceedsCapacity with the field name.
func ToRuntime(p Identifier) (Runtime, error) {
	if err := p.Validate(); err != nil {
		return Runtime{}, err
	}

	name, err := bounded.NewString(p.Name, MaxNameBytes)
	if err != nil {
		return Runtime{}, wrapError(ErrExceedsCapacity, "name", err)
	}

	rt := Runtime{Kind: p.Kind, Name: name}

	if p.Ipi != "" {
		ipi, err := midds.ParseIpi(p.Ipi)
		if err != nil {
			return Runtime{}, wrapError(ErrInvalidIpi, "ipi", err)
		}
		rt.Ipi = &ipi
	}
	if p.Isni != "" {
		isni, err := midds.ParseIsni(p.Isni)
		if err != nil {
			return Runtime{}, wrapError(ErrInvalidIsni, "isni", err)
		}
		rt.Isni = &isni
	}

	switch p.Kind {
	case KindArtist:
		aliases := bounded.NewSet[bounded.String](MaxAliases)
		for _, raw := range p.Aliases {
			alias, err := bounded.NewString(raw, MaxNameBytes)
			if err != nil {
				return Runtime{}, wrapError(ErrExceedsCapacity, "aliases", err)
			}
			if err := aliases.Push(alias, bounded.DuplicateRejected); err != nil {
				return Runtime{}, wrapError(ErrExceedsCapacity, "aliases", err)
			}
		}
		rt.Aliases = aliases
	case KindEntity:
		rt.EntityType = p.EntityType
	}
	return rt, nil
}

// FromRuntime widens the bounded form back to the permissive std form.
// Infallible: every runtime value is a valid std value.
func FromRuntime(rt Runtime) Identifier {
	p := Identifier{Kind: rt.Kind, Name: rt.Name.String()}
	if rt.Ipi != nil {
		p.Ipi = rt.Ipi.String()
	}
	if rt.Isni != nil {
		p.Isni = rt.Isni.String()
	}
	switch rt.Kind {
	case KindArtist:
		for _, alias := range rt.Aliases.Items() {
			p.Aliases = append(p.Aliases, alias.String())
		}
	case KindEntity:
		p.EntityType = rt.EntityType
	}
	return p
}
