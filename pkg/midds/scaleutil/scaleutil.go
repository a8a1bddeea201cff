// Package scaleutil holds the small SCALE helpers shared by the MIDDS
// runtime forms: Option encoding for scalars and bounded text, and compact
// length construction.
package scaleutil

import (
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"

	"melodie/pkg/bounded"
)

// CompactLen wraps a slice length for compact encoding.
func CompactLen(n int) big.Int {
	return *big.NewInt(int64(n))
}

// EncodeOptionU16 writes an Option<u16>.
func EncodeOptionU16(encoder scale.Encoder, v *uint16) error {
	if v == nil {
		return encoder.EncodeOption(false, uint16(0))
	}
	return encoder.EncodeOption(true, *v)
}

// DecodeOptionU16 reads an Option<u16>.
func DecodeOptionU16(decoder scale.Decoder) (*uint16, error) {
	var (
		has bool
		v   uint16
	)
	if err := decoder.DecodeOption(&has, &v); err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return &v, nil
}

// EncodeOptionU64 writes an Option<u64>.
func EncodeOptionU64(encoder scale.Encoder, v *uint64) error {
	if v == nil {
		return encoder.EncodeOption(false, uint64(0))
	}
	return encoder.EncodeOption(true, *v)
}

// DecodeOptionU64 reads an Option<u64>.
func DecodeOptionU64(decoder scale.Decoder) (*uint64, error) {
	var (
		has bool
		v   uint64
	)
	if err := decoder.DecodeOption(&has, &v); err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return &v, nil
}

// EncodeOptionText writes an Option<Vec<u8>> from a bounded string.
func EncodeOptionText(encoder scale.Encoder, s *bounded.String) error {
	if s == nil {
		return encoder.EncodeOption(false, []byte(nil))
	}
	return encoder.EncodeOption(true, s.Bytes())
}

// DecodeOptionText reads an Option<Vec<u8>> back into a bounded string with
// the given capacity. Bound violations surface as bounded package errors for
// the caller to wrap with field context.
func DecodeOptionText(decoder scale.Decoder, max int) (*bounded.String, error) {
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
	s, err := bounded.NewString(string(b), max)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
