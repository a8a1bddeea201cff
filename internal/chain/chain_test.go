package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodie/pkg/platform/circuit"
	"melodie/pkg/platform/sentinel"
)

func TestDialEmptyURLDisablesChain(t *testing.T) {
	client, err := Dial("", signature.KeyringPair{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func newTestClient(submit func(ctx context.Context, framed []byte) (types.Hash, error)) *Client {
	return &Client{
		breaker: circuit.New("chain", circuit.WithFailureThreshold(3)),
		submit:  submit,
	}
}

func TestSubmitRecordSuccess(t *testing.T) {
	want := types.Hash{0xAB}
	client := newTestClient(func(_ context.Context, framed []byte) (types.Hash, error) {
		assert.Equal(t, []byte{0x03, 0x01}, framed)
		return want, nil
	})

	got, err := client.SubmitRecord(context.Background(), []byte{0x03, 0x01})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSubmitRecordOpensBreakerAndShedsLoad(t *testing.T) {
	calls := 0
	nodeDown := errors.New("connection refused")
	client := newTestClient(func(context.Context, []byte) (types.Hash, error) {
		calls++
		return types.Hash{}, nodeDown
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := client.SubmitRecord(ctx, []byte{0x00})
		assert.ErrorIs(t, err, nodeDown)
	}
	assert.Equal(t, 3, calls)

	// Open breaker: the next submissions are shed without touching the
	// node, until a probe slips through.
	var shed int
	for i := 0; i < probeEvery-1; i++ {
		_, err := client.SubmitRecord(ctx, []byte{0x00})
		if errors.Is(err, sentinel.ErrUnavailable) {
			shed++
		}
	}
	assert.Equal(t, probeEvery-1, shed)
	assert.Equal(t, 3, calls)

	_, err := client.SubmitRecord(ctx, []byte{0x00})
	assert.ErrorIs(t, err, nodeDown)
	assert.Equal(t, 4, calls)
}

func TestSubmitRecordProbesCloseBreakerAfterRecovery(t *testing.T) {
	healthy := false
	client := newTestClient(func(context.Context, []byte) (types.Hash, error) {
		if !healthy {
			return types.Hash{}, errors.New("connection refused")
		}
		return types.Hash{0x01}, nil
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = client.SubmitRecord(ctx, []byte{0x00})
	}
	require.True(t, client.breaker.IsOpen())

	healthy = true
	// Two successful probes close the breaker again.
	var successes int
	for i := 0; i < 2*probeEvery; i++ {
		if _, err := client.SubmitRecord(ctx, []byte{0x00}); err == nil {
			successes++
		}
	}
	assert.Equal(t, 2, successes)
	assert.False(t, client.breaker.IsOpen())

	_, err := client.SubmitRecord(ctx, []byte{0x00})
	assert.NoError(t, err)
}
