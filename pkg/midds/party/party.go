// Package party defines the PartyIdentifier MIDDS entity: the tagged
// Artist/Entity variant that anchors creator references across works,
// tracks and releases.
//
// Domain Purity: no I/O, no context.Context, no time.Now(). Validation is a
// pure function of the input bytes.
package party

import (
	"errors"
	"unicode/utf8"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// Capacity bounds for party fields. These match the on-chain storage layout
// and must never grow without a chain migration.
const (
	MaxNameBytes = 128
	MaxAliases   = 8
)

// Kind tags the identifier variant.
type Kind string

const (
	KindArtist Kind = "artist"
	KindEntity Kind = "entity"
)

// EntityType classifies non-artist parties.
type EntityType string

const (
	EntityPublisher EntityType = "publisher"
	EntityLabel     EntityType = "label"
	EntityCMO       EntityType = "cmo"
	EntityOther     EntityType = "other"
)

var entityTypeIndex = map[EntityType]uint8{
	EntityPublisher: 0, EntityLabel: 1, EntityCMO: 2, EntityOther: 3,
}

var entityTypeByIndex = map[uint8]EntityType{
	0: EntityPublisher, 1: EntityLabel, 2: EntityCMO, 3: EntityOther,
}

// Identifier is the permissive std form of a PartyIdentifier.
//
// Invariants (checked by Validate):
//   - Name is well-formed UTF-8, 1..128 bytes
//   - Ipi, when present, parses per pkg/midds and is spelled canonically
//     (no leading zeros)
//   - Isni, when present, parses per pkg/midds and is spelled canonically
//     (sixteen characters, no hyphens)
//   - Artist: at most 8 pairwise-distinct aliases, each 1..128 bytes
//   - Entity: EntityType is one of the closed enumeration
type Identifier struct {
	Kind       Kind       `json:"kind"`
	Name       string     `json:"name"`
	Ipi        string     `json:"ipi,omitempty"`
	Isni       string     `json:"isni,omitempty"`
	Aliases    []string   `json:"aliases,omitempty"`
	EntityType EntityType `json:"entity_type,omitempty"`
}

// Builder assembles an Identifier fluently. Build returns the unvalidated
// std form; TryBuild validates first.
type Builder struct {
	id Identifier
}

func NewArtist(name string) *Builder {
	return &Builder{id: Identifier{Kind: KindArtist, Name: name}}
}

func NewEntity(name string, entityType EntityType) *Builder {
	return &Builder{id: Identifier{Kind: KindEntity, Name: name, EntityType: entityType}}
}

func (b *Builder) Ipi(ipi string) *Builder {
	b.id.Ipi = ipi
	return b
}

func (b *Builder) Isni(isni string) *Builder {
	b.id.Isni = isni
	return b
}

func (b *Builder) Alias(alias string) *Builder {
	b.id.Aliases = append(b.id.Aliases, alias)
	return b
}

// Build returns the std form without validating.
func (b *Builder) Build() Identifier { return b.id }

// TryBuild validates and returns the std form.
func (b *Builder) TryBuild() (Identifier, error) {
	if err := b.id.Validate(); err != nil {
		return Identifier{}, err
	}
	return b.id, nil
}

// Validate checks all invariants without mutating the identifier.
func (p Identifier) Validate() error {
	if p.Kind != KindArtist && p.Kind != KindEntity {
		return newError(ErrUnknownKind, "kind")
	}
	if err := checkText(p.Name, MaxNameBytes, ErrInvalidName, "name"); err != nil {
		return err
	}
	if p.Ipi != "" {
		ipi, err := midds.ParseIpi(p.Ipi)
		if err != nil {
			return wrapError(ErrInvalidIpi, "ipi", err)
		}
		// The runtime form stores the IPI as a number; a zero-padded
		// spelling could not survive the round trip, so only the
		// canonical spelling validates.
		if ipi.String() != p.Ipi {
			return newError(ErrNotCanonical, "ipi")
		}
	}
	if p.Isni != "" {
		isni, err := midds.ParseIsni(p.Isni)
		if err != nil {
			return wrapError(ErrInvalidIsni, "isni", err)
		}
		// Same for hyphen-grouped ISNI spellings.
		if isni.String() != p.Isni {
			return newError(ErrNotCanonical, "isni")
		}
	}
	switch p.Kind {
	case KindArtist:
		if len(p.Aliases) > MaxAliases {
			return tooMany(ErrTooManyAliases, "aliases", len(p.Aliases))
		}
		seen := make(map[string]struct{}, len(p.Aliases))
		for _, alias := range p.Aliases {
			if err := checkText(alias, MaxNameBytes, ErrInvalidAlias, "aliases"); err != nil {
				return err
			}
			if _, dup := seen[alias]; dup {
				return newError(ErrDuplicateAlias, "aliases")
			}
			seen[alias] = struct{}{}
		}
	case KindEntity:
		if len(p.Aliases) > 0 {
			return newError(ErrInvalidAlias, "aliases")
		}
		if _, ok := entityTypeIndex[p.EntityType]; !ok {
			return newError(ErrUnknownEntityType, "entity_type")
		}
	}
	return nil
}

// checkText maps bounded-string violations onto the party error taxonomy.
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
