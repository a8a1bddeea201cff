package party

import (
	"strconv"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
)

// Runtime is the bounded, SCALE-encodable form of a PartyIdentifier, safe
// for on-chain storage. Construct it through ToRuntime only.
type Runtime struct {
	Kind       Kind
	Name       bounded.String
	Ipi        *midds.Ipi
	Isni       *midds.Isni
	Aliases    bounded.Set[bounded.String] // artist variant
	EntityType EntityType                  // entity variant
}

// SCALE layout: variant discriminant u8, then name as Vec<u8>, Option<u64>
// IPI, Option<Vec<u8>> ISNI, then the variant payload (aliases Vec<Vec<u8>>
// for artists, entity type u8 for entities). The field order is part of the
// on-chain encoding and must never change.

func (r Runtime) Encode(encoder scale.Encoder) error {
	var discriminant byte
	if r.Kind == KindEntity {
		discriminant = 1
	}
	if err := encoder.PushByte(discriminant); err != nil {
		return err
	}
	if err := encoder.Encode(r.Name.Bytes()); err != nil {
		return err
	}
	if err := encodeOptionIpi(encoder, r.Ipi); err != nil {
		return err
	}
	if err := encodeOptionIsni(encoder, r.Isni); err != nil {
		return err
	}
	switch r.Kind {
	case KindArtist:
		aliases := r.Aliases.Items()
		raw := make([][]byte, len(aliases))
		for i, alias := range aliases {
			raw[i] = alias.Bytes()
		}
		return encoder.Encode(raw)
	default:
		return encoder.PushByte(entityTypeIndex[r.EntityType])
	}
}

func (r *Runtime) Decode(decoder scale.Decoder) error {
	discriminant, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	switch discriminant {
	case 0:
		r.Kind = KindArtist
	case 1:
		r.Kind = KindEntity
	default:
		return newError(ErrUnknownKind, "kind")
	}
	var name []byte
	if err := decoder.Decode(&name); err != nil {
		return err
	}
	bname, err := bounded.NewString(string(name), MaxNameBytes)
	if err != nil {
		return wrapError(ErrExceedsCapacity, "name", err)
	}
	r.Name = bname
	if r.Ipi, err = decodeOptionIpi(decoder); err != nil {
		return err
	}
	if r.Isni, err = decodeOptionIsni(decoder); err != nil {
		return err
	}
	switch r.Kind {
	case KindArtist:
		var raw [][]byte
		if err := decoder.Decode(&raw); err != nil {
			return err
		}
		aliases := bounded.NewSet[bounded.String](MaxAliases)
		for _, b := range raw {
			alias, err := bounded.NewString(string(b), MaxNameBytes)
			if err != nil {
				return wrapError(ErrExceedsCapacity, "aliases", err)
			}
			if err := aliases.Push(alias, bounded.DuplicateRejected); err != nil {
				return wrapError(ErrExceedsCapacity, "aliases", err)
			}
		}
		r.Aliases = aliases
	case KindEntity:
		idx, err := decoder.ReadOneByte()
		if err != nil {
			return err
		}
		et, ok := entityTypeByIndex[idx]
		if !ok {
			return newError(ErrUnknownEntityType, "entity_type")
		}
		r.EntityType = et
	}
	return nil
}

// IPI values are numeric, so the chain stores them as u64 while the SDK keeps
// the canonical zero-padded string.

func encodeOptionIpi(encoder scale.Encoder, ipi *midds.Ipi) error {
	if ipi == nil {
		return encoder.EncodeOption(false, uint64(0))
	}
	n, err := strconv.ParseUint(ipi.String(), 10, 64)
	if err != nil {
		return wrapError(ErrInvalidIpi, "ipi", err)
	}
	return encoder.EncodeOption(true, n)
}

func decodeOptionIpi(decoder scale.Decoder) (*midds.Ipi, error) {
	var (
		has bool
		n   uint64
	)
	if err := decoder.DecodeOption(&has, &n); err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	raw := strconv.FormatUint(n, 10)
	ipi, err := midds.ParseIpi(raw)
	if err != nil {
		return nil, wrapError(ErrInvalidIpi, "ipi", err)
	}
	return &ipi, nil
}

func encodeOptionIsni(encoder scale.Encoder, isni *midds.Isni) error {
	if isni == nil {
		return encoder.EncodeOption(false, []byte(nil))
	}
	return encoder.EncodeOption(true, []byte(isni.String()))
}

func decodeOptionIsni(decoder scale.Decoder) (*midds.Isni, error) {
	var (
		has bool
		b   []byte
	)
	if err := decoder.DecodeOption(&has, &b); err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	isni, err := midds.ParseIsni(string(b))
	if err != nil {
		return nil, wrapError(ErrInvalidIsni, "isni", err)
	}
	return &isni, nil
}
