package release

import (
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"melodie/pkg/bounded"
	"melodie/pkg/midds"
	"melodie/pkg/midds/scaleutil"
)

// Runtime is the bounded, SCALE-encodable form of a Release. Construct it
// through ToRuntime only.
type Runtime struct {
	Title       bounded.String
	ReleaseType Type
	Date        midds.Date
	Tracks      bounded.Vec[uint64]
	Label       *uint64
	Upc         *midds.Upc
}

// SCALE layout, in order: title Vec<u8>, type u8, date (u16, u8, u8),
// tracks Vec<u64>, Option<u64> label, Option<Vec<u8>> upc. The order is
// part of the on-chain encoding and must never change.

func (r Runtime) Encode(encoder scale.Encoder) error {
	if err := encoder.Encode(r.Title.Bytes()); err != nil {
		return err
	}
	if err := encoder.PushByte(r.ReleaseType.ScaleIndex()); err != nil {
		return err
	}
	if err := encoder.Encode(r.Date.Year()); err != nil {
		return err
	}
	if err := encoder.PushByte(r.Date.Month()); err != nil {
		return err
	}
	if err := encoder.PushByte(r.Date.Day()); err != nil {
		return err
	}
	if err := encoder.Encode(r.Tracks.Items()); err != nil {
		return err
	}
	if err := scaleutil.EncodeOptionU64(encoder, r.Label); err != nil {
		return err
	}
	if r.Upc == nil {
		return encoder.EncodeOption(false, []byte(nil))
	}
	return encoder.EncodeOption(true, []byte(r.Upc.String()))
}

func (r *Runtime) Decode(decoder scale.Decoder) error {
	var rawTitle []byte
	if err := decoder.Decode(&rawTitle); err != nil {
		return err
	}
	title, err := bounded.NewString(string(rawTitle), MaxTitleBytes)
	if err != nil {
		return wrapError(ErrExceedsCapacity, "title", err)
	}
	r.Title = title

	idx, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if r.ReleaseType, err = TypeFromScaleIndex(idx); err != nil {
		return err
	}

	var year uint16
	if err := decoder.Decode(&year); err != nil {
		return err
	}
	month, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	day, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}
	if r.Date, err = midds.NewDate(year, month, day); err != nil {
		return wrapError(ErrInvalidDate, "date", err)
	}

	var tracks []uint64
	if err := decoder.Decode(&tracks); err != nil {
		return err
	}
	if len(tracks) == 0 {
		return newError(ErrEmptyTracks, "tracks")
	}
	if r.Tracks, err = bounded.VecFrom(tracks, MaxTracks); err != nil {
		return wrapError(ErrExceedsCapacity, "tracks", err)
	}

	if r.Label, err = scaleutil.DecodeOptionU64(decoder); err != nil {
		return err
	}

	var (
		hasUpc bool
		rawUpc []byte
	)
	if err := decoder.DecodeOption(&hasUpc, &rawUpc); err != nil {
		return err
	}
	if hasUpc {
		upc, err := midds.ParseUpc(string(rawUpc))
		if err != nil {
			return wrapError(ErrInvalidUpc, "upc", err)
		}
		r.Upc = &upc
	} else {
		r.Upc = nil
	}
	return nil
}
