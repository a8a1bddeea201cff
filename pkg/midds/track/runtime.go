package track

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
	"melodie/pkg/midds/scaleutil"
)

// Runtime is the bounded, SCALE-encodable form of a Track. Construct it
// through ToRuntime only.
type Runtime struct {
	Isrc           midds.Isrc
	Title          bounded.String
	TitleAliases   bounded.Set[bounded.String]
	DurationMs     uint32
	Bpm            *uint16
	RecordingYear  uint16
	RecordingPlace *bounded.String
	Genres         bounded.Set[midds.Genre]
	Producers      bounded.Vec[uint64]
	Performers     bounded.Vec[uint64]
	Contributors   bounded.Vec[ContributorRef]
	MusicalWork    uint64
}

// SCALE layout, in order: isrc Vec<u8>, title Vec<u8>, aliases Vec<Vec<u8>>,
// duration u32, Option<u16> bpm, year u16, Option<Vec<u8>> place, genres
// Vec<u8>, producers Vec<u64>, performers Vec<u64>, contributors
// Vec<(u64, u8)>, work reference u64. The order is part of the on-chain
// encoding and must never change.

func (r Runtime) Encode(encoder scale.Encoder) error {
	if err := encoder.Encode([]byte(r.Isrc.String())); err != nil {
		return err
	}
	if err := encoder.Encode(r.Title.Bytes()); err != nil {
		return err
	}
	aliases := r.TitleAliases.Items()
	rawAliases := make([][]byte, len(aliases))
	for i, alias := range aliases {
		rawAliases[i] = alias.Bytes()
	}
	if err := encoder.Encode(rawAliases); err != nil {
		return err
	}
	if err := encoder.Encode(r.DurationMs); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionU16(encoder, r.Bpm); err != nil {
		return err
	}
	if err := encoder.Encode(r.RecordingYear); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionText(encoder, r.RecordingPlace); err != nil {
		return err
	}
	genres := r.Genres.Items()
	genreBytes := make([]byte, len(genres))
	for i, g := range genres {
		genreBytes[i] = g.ScaleIndex()
	}
	if err := encoder.Encode(genreBytes); err != nil {
		return err
	}
	if err := encoder.Encode(r.Producers.Items()); err != nil {
		return err
	}
	if err := encoder.Encode(r.Performers.Items()); err != nil {
		return err
	}
	contributors := r.Contributors.Items()
	if err := encoder.EncodeUintCompact(scaleutil.CompactLen(len(contributors))); err != nil {
		return err
	}
	for _, c := range contributors {
		if err := encoder.Encode(c.PartyID); err != nil {
			return err
		}
		if err := encoder.PushByte(c.Role.ScaleIndex()); err != nil {
			return err
		}
	}
	return encoder.Encode(r.MusicalWork)
}

func (r *Runtime) Decode(decoder scale.Decoder) error {
	var rawIsrc []byte
	if err := decoder.Decode(&rawIsrc); err != nil {
		return err
	}
	isrc, err := midds.ParseIsrc(string(rawIsrc))
	if err != nil {
		return wrapError(ErrInvalidIsrc, "isrc", err)
	}
	r.Isrc = isrc

	var rawTitle []byte
	if err := decoder.Decode(&rawTitle); err != nil {
		return err
	}
	title, err := bounded.NewString(string(rawTitle), MaxTitleBytes)
	if err != nil {
		return wrapError(ErrExceedsCapacity, "title", err)
	}
	r.Title = title

	var rawAliases [][]byte
	if err := decoder.Decode(&rawAliases); err != nil {
		return err
	}
	aliases := bounded.NewSet[bounded.String](MaxTitleAliases)
	for _, b := range rawAliases {
		alias, err := bounded.NewString(string(b), MaxTitleBytes)
		if err != nil {
			return wrapError(ErrExceedsCapacity, "title_aliases", err)
		}
		if err := aliases.Push(alias, bounded.DuplicateRejected); err != nil {
			return wrapError(ErrExceedsCapacity, "title_aliases", err)
		}
	}
	r.TitleAliases = aliases

	if err := decoder.Decode(&r.DurationMs); err != nil {
		return err
	}
	if r.Bpm, err = scaleutil.DecodeOptionU16(decoder); err != nil {
		return err
	}
	if err := decoder.Decode(&r.RecordingYear); err != nil {
		return err
	}
	if r.RecordingPlace, err = scaleutil.DecodeOptionText(decoder, MaxPlaceBytes); err != nil {
		if bounded.IsBoundError(err) {
			return wrapError(ErrExceedsCapacity, "recording_place", err)
		}
		return err
	}

	var genreBytes []byte
	if err := decoder.Decode(&genreBytes); err != nil {
		return err
	}
	genres := bounded.NewSet[midds.Genre](MaxGenres)
	for _, idx := range genreBytes {
		g, err := midds.GenreFromScaleIndex(idx)
		if err != nil {
			return wrapError(ErrUnknownGenre, "genres", err)
		}
		if err := genres.Push(g, bounded.DuplicateRejected); err != nil {
			return wrapError(ErrExceedsCapacity, "genres", err)
		}
	}
	r.Genres = genres

	var producers []uint64
	if err := decoder.Decode(&producers); err != nil {
		return err
	}
	if r.Producers, err = bounded.VecFrom(producers, MaxProducers); err != nil {
		return wrapError(ErrExceedsCapacity, "producers", err)
	}
	var performers []uint64
	if err := decoder.Decode(&performers); err != nil {
		return err
	}
	if r.Performers, err = bounded.VecFrom(performers, MaxPerformers); err != nil {
		return wrapError(ErrExceedsCapacity, "performers", err)
	}

	length, err := decoder.DecodeUintCompact()
	if err != nil {
		return err
	}
	contributors := bounded.NewVec[ContributorRef](MaxContributors)
	for i := uint64(0); i < length.Uint64(); i++ {
		var c ContributorRef
		if err := decoder.Decode(&c.PartyID); err != nil {
			return err
		}
		idx, err := decoder.ReadOneByte()
		if err != nil {
			return err
		}
		role, err := midds.RoleFromScaleIndex(idx)
		if err != nil {
			return wrapError(ErrUnknownRole, "contributors", err)
		}
		c.Role = role
		if err := contributors.Push(c); err != nil {
			return wrapError(ErrExceedsCapacity, "contributors", err)
		}
	}
	r.Contributors = contributors

	return decoder.Decode(&r.MusicalWork)
}
