package work

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
	"melodie/pkg/midds/scaleutil"
)

// Runtime is the bounded, SCALE-encodable form of a MusicalWork. Construct
// it through ToRuntime only.
type Runtime struct {
	Iswc          midds.Iswc
	Title         bounded.String
	CreationYear  uint16
	Bpm           *uint16
	Voices        *uint16
	Opus          *bounded.String
	CatalogNumber *bounded.String
	Creators      bounded.Vec[CreatorRef]
}

// SCALE layout, in order: iswc Vec<u8>, title Vec<u8>, year u16,
// Option<u16> bpm, Option<u16> voices, Option<Vec<u8>> opus,
// Option<Vec<u8>> catalog, creators Vec<(u64, u8, u16)>. The order is part
// of the on-chain encoding and must never change.

func (r Runtime) Encode(encoder scale.Encoder) error {
	if err := encoder.Encode([]byte(r.Iswc.String())); err != nil {
		return err
	}
	if err := encoder.Encode(r.Title.Bytes()); err != nil {
		return err
	}
	if err := encoder.Encode(r.CreationYear); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionU16(encoder, r.Bpm); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionU16(encoder, r.Voices); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionText(encoder, r.Opus); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionText(encoder, r.CatalogNumber); err != nil {
		return err
	}
	creators := r.Creators.Items()
	if err := encoder.EncodeUintCompact(scaleutil.CompactLen(len(creators))); err != nil {
		return err
	}
	for _, c := range creators {
		if err := encoder.Encode(c.PartyID); err != nil {
			return err
		}
		if err := encoder.PushByte(c.Role.ScaleIndex()); err != nil {
			return err
		}
		if err := encoder.Encode(c.SharePermille); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) Decode(decoder scale.Decoder) error {
	var rawIswc []byte
	if err := decoder.Decode(&rawIswc); err != nil {
		return err
	}
	iswc, err := midds.ParseIswc(string(rawIswc))
	if err != nil {
		return wrapError(ErrInvalidIswc, "iswc", err)
	}
	r.Iswc = iswc

	var rawTitle []byte
	if err := decoder.Decode(&rawTitle); err != nil {
		return err
	}
	title, err := bounded.NewString(string(rawTitle), MaxTitleBytes)
	if err != nil {
		return wrapError(ErrExceedsCapacity, "title", err)
	}
	r.Title = title

	if err := decoder.Decode(&r.CreationYear); err != nil {
		return err
	}
	if r.Bpm, err = scaleutil.DecodeOptionU16(decoder); err != nil {
		return err
	}
	if r.Voices, err = scaleutil.DecodeOptionU16(decoder); err != nil {
		return err
	}
	if r.Opus, err = scaleutil.DecodeOptionText(decoder, MaxOpusBytes); err != nil {
		if bounded.IsBoundError(err) {
			return wrapError(ErrExceedsCapacity, "opus", err)
		}
		return err
	}
	if r.CatalogNumber, err = scaleutil.DecodeOptionText(decoder, MaxCatalogBytes); err != nil {
		if bounded.IsBoundError(err) {
			return wrapError(ErrExceedsCapacity, "catalog_number", err)
		}
		return err
	}

	length, err := decoder.DecodeUintCompact()
	if err != nil {
		return err
	}
	creators := bounded.NewVec[CreatorRef](MaxCreators)
	for i := uint64(0); i < length.Uint64(); i++ {
		var c CreatorRef
		if err := decoder.Decode(&c.PartyID); err != nil {
			return err
		}
		idx, err := decoder.ReadOneByte()
		if err != nil {
			return err
		}
		role, err := midds.RoleFromScaleIndex(idx)
		if err != nil {
			return wrapError(ErrUnknownRole, "creators", err)
		}
		c.Role = role
		if err := decoder.Decode(&c.SharePermille); err != nil {
			return err
		}
		if err := creators.Push(c); err != nil {
			return wrapError(ErrExceedsCapacity, "creators", err)
		}
	}
	r.Creators = creators
	return nil
}
