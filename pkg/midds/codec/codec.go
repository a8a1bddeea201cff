// Package codec frames MIDDS runtime forms for transport and storage: a
// one-byte kind envelope around the SCALE payload, plus the blake2b-256
// record digest used as the content address for registered records.
package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"golang.org/x/crypto/blake2b"

	"melodie/pkg/midds/party"
	"melodie/pkg/midds/release"
	"melodie/pkg/midds/track"
	"melodie/pkg/midds/work"
)

// Kind names a MIDDS entity family.
type Kind string

const (
	KindWork    Kind = "musical_work"
	KindTrack   Kind = "track"
	KindRelease Kind = "release"
	KindParty   Kind = "party"
)

var kindIndex = map[Kind]uint8{
	KindWork: 0, KindTrack: 1, KindRelease: 2, KindParty: 3,
}

var kindByIndex = func() map[uint8]Kind {
	m := make(map[uint8]Kind, len(kindIndex))
	for k, idx := range kindIndex {
		m[idx] = k
	}
	return m
}()

var (
	ErrUnknownKind  = errors.New("codec: unknown midds kind")
	ErrEmptyPayload = errors.New("codec: empty payload")
	ErrKindMismatch = errors.New("codec: payload kind mismatch")
)

// ParseKind validates a kind name.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if _, ok := kindIndex[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}

func (k Kind) String() string { return string(k) }

// Encodeable is satisfied by every MIDDS runtime form.
type Encodeable interface {
	Encode(encoder scale.Encoder) error
}

// Encode frames a runtime form as kind byte + SCALE payload.
func Encode(kind Kind, rt Encodeable) ([]byte, error) {
	idx, ok := kindIndex[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	var buf bytes.Buffer
	buf.WriteByte(idx)
	if err := rt.Encode(*scale.NewEncoder(&buf)); err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", kind, err)
	}
	return buf.Bytes(), nil
}

// Decoded is the result of Decode: exactly one of the runtime fields is
// populated, matching Kind.
type Decoded struct {
	Kind    Kind
	Work    *work.Runtime
	Track   *track.Runtime
	Release *release.Runtime
	Party   *party.Runtime
}

// Decode unframes a kind byte + SCALE payload back into a runtime form.
func Decode(data []byte) (Decoded, error) {
	if len(data) == 0 {
		return Decoded{}, ErrEmptyPayload
	}
	kind, ok := kindByIndex[data[0]]
	if !ok {
		return Decoded{}, fmt.Errorf("%w: discriminant %d", ErrUnknownKind, data[0])
	}
	decoder := scale.NewDecoder(bytes.NewReader(data[1:]))
	out := Decoded{Kind: kind}
	var err error
	switch kind {
	case KindWork:
		out.Work = new(work.Runtime)
		err = out.Work.Decode(*decoder)
	case KindTrack:
		out.Track = new(track.Runtime)
		err = out.Track.Decode(*decoder)
	case KindRelease:
		out.Release = new(release.Runtime)
		err = out.Release.Decode(*decoder)
	case KindParty:
		out.Party = new(party.Runtime)
		err = out.Party.Decode(*decoder)
	}
	if err != nil {
		return Decoded{}, fmt.Errorf("codec: decode %s: %w", kind, err)
	}
	return out, nil
}

// Digest returns the blake2b-256 content address of a framed record.
func Digest(framed []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(framed)
}

// DigestHex renders the content address as a 0x-prefixed hex string.
func DigestHex(framed []byte) string {
	sum := Digest(framed)
	return fmt.Sprintf("0x%x", sum[:])
}
