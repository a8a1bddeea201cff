package audit_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melodie/pkg/platform/audit"
)

func TestNewPublisherWithoutBrokersIsDisabled(t *testing.T) {
	p, err := audit.NewPublisher(nil, "melodie.audit", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.Nil(t, p)

	// Emitting through the nil publisher must be a no-op, not a panic.
	p.Emit(context.Background(), audit.Event{Type: audit.EventRecordRegistered})
	assert.NoError(t, p.Close(context.Background()))
}

func TestEventCategories(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventRecordRegistered.Category())
	assert.Equal(t, audit.CategoryCompliance, audit.EventCertificateIssued.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventMiddsValidated.Category())
	assert.Equal(t, audit.CategoryOperations, audit.EventType("unknown").Category())
}
