package tx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEmptyContext(t *testing.T) {
	_, ok := From(context.Background())
	assert.False(t, ok)
}

func TestWithNilTxReturnsSameContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, WithTx(ctx, nil))
}
