package codec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodie/pkg/midds"
	"melodie/pkg/midds/codec"
	"melodie/pkg/midds/party"
	"melodie/pkg/midds/work"
)

var ref = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	std := work.NewBuilder("T-012345678-9", "Hello", 2020).
		Creator(1, midds.RoleComposer, 1000).
		Build()
	rt, err := work.ToRuntime(std, ref)
	require.NoError(t, err)

	framed, err := codec.Encode(codec.KindWork, rt)
	require.NoError(t, err)
	require.NotEmpty(t, framed)
	assert.Equal(t, byte(0), framed[0])

	decoded, err := codec.Decode(framed)
	require.NoError(t, err)
	assert.Equal(t, codec.KindWork, decoded.Kind)
	require.NotNil(t, decoded.Work)
	assert.Equal(t, std, work.FromRuntime(*decoded.Work))
}

func TestDecodeRejectsBadEnvelope(t *testing.T) {
	_, err := codec.Decode(nil)
	assert.ErrorIs(t, err, codec.ErrEmptyPayload)

	_, err = codec.Decode([]byte{0xEE, 0x00})
	assert.ErrorIs(t, err, codec.ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := codec.ParseKind("track")
	require.NoError(t, err)
	assert.Equal(t, codec.KindTrack, k)

	_, err = codec.ParseKind("playlist")
	assert.ErrorIs(t, err, codec.ErrUnknownKind)
}

func TestDigestIsStableAndContentSensitive(t *testing.T) {
	artist, err := party.NewArtist("Nina Simone").TryBuild()
	require.NoError(t, err)
	rt, err := party.ToRuntime(artist)
	require.NoError(t, err)

	framed, err := codec.Encode(codec.KindParty, rt)
	require.NoError(t, err)

	assert.Equal(t, codec.Digest(framed), codec.Digest(framed))
	assert.Len(t, codec.DigestHex(framed), 2+64)

	other, err := party.NewArtist("Nina Simon").TryBuild()
	require.NoError(t, err)
	otherRt, err := party.ToRuntime(other)
	require.NoError(t, err)
	otherFramed, err := codec.Encode(codec.KindParty, otherRt)
	require.NoError(t, err)
	assert.NotEqual(t, codec.Digest(framed), codec.Digest(otherFramed))
}
