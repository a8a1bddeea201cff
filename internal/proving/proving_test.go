package proving_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"melodie/internal/proving"
)

func TestNewWitness(t *testing.T) {
	framed := []byte{0, 1, 2, 3}
	w := proving.NewWitness(framed)

	assert.Equal(t, framed, w.Payload)
	assert.Len(t, w.PublicInput, 32)

	// The witness owns its payload copy.
	framed[0] = 0xFF
	assert.Equal(t, byte(0), w.Payload[0])

	// Commitment is content-derived.
	other := proving.NewWitness([]byte{9})
	assert.NotEqual(t, w.PublicInput, other.PublicInput)
}
