package scaleutil_test

import (
	"bytes"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodie/pkg/bounded"
	"melodie/pkg/midds/scaleutil"
)

func TestDecodeOptionTextOverCapacity(t *testing.T) {
	// Some("toolong") with a 3-byte bound: tag, compact length, payload.
	raw := append([]byte{0x01, byte(7 << 2)}, []byte("toolong")...)
	decoder := scale.NewDecoder(bytes.NewReader(raw))

	_, err := scaleutil.DecodeOptionText(*decoder, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, bounded.ErrCapacity)
	assert.True(t, bounded.IsBoundError(err))
}

func TestDecodeOptionTextTruncatedIsNotBoundError(t *testing.T) {
	// Option tag promises a value the stream does not carry.
	decoder := scale.NewDecoder(bytes.NewReader([]byte{0x01}))

	_, err := scaleutil.DecodeOptionText(*decoder, 64)
	require.Error(t, err)
	assert.False(t, bounded.IsBoundError(err))
}

func TestIsBoundError(t *testing.T) {
	assert.True(t, bounded.IsBoundError(bounded.ErrEmpty))
	assert.True(t, bounded.IsBoundError(bounded.ErrDuplicate))
	assert.False(t, bounded.IsBoundError(assert.AnError))
	assert.False(t, bounded.IsBoundError(nil))
}
