package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerStartsClosed(t *testing.T) {
	b := New("chain")
	assert.Equal(t, "chain", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

func TestBreakerOpensAtFailureThreshold(t *testing.T) {
	b := New("chain", WithFailureThreshold(3))

	for i := 0; i < 2; i++ {
		fallback, change := b.RecordFailure()
		assert.False(t, fallback)
		assert.False(t, change.Opened)
	}

	fallback, change := b.RecordFailure()
	assert.True(t, fallback)
	assert.True(t, change.Opened)
	assert.True(t, b.IsOpen())
}

func TestBreakerClosesAtSuccessThreshold(t *testing.T) {
	b := New("chain", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	primary, change := b.RecordSuccess()
	assert.False(t, primary)
	assert.False(t, change.Closed)

	primary, change = b.RecordSuccess()
	assert.True(t, primary)
	assert.True(t, change.Closed)
	assert.False(t, b.IsOpen())
}

func TestBreakerCountsConsecutiveOutcomesOnly(t *testing.T) {
	b := New("chain", WithFailureThreshold(3))

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	assert.False(t, b.IsOpen())
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	// A failure while open resets the success run as well.
	b = New("chain", WithFailureThreshold(1), WithSuccessThreshold(3))
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordSuccess()
	assert.True(t, b.IsOpen())
	b.RecordSuccess()
	assert.False(t, b.IsOpen())
}

func TestBreakerFailuresWhileOpenKeepFallback(t *testing.T) {
	b := New("chain", WithFailureThreshold(1))
	b.RecordFailure()

	fallback, change := b.RecordFailure()
	assert.True(t, fallback)
	assert.False(t, change.Opened)
}

func TestBreakerReset(t *testing.T) {
	b := New("chain", WithFailureThreshold(1))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
}
