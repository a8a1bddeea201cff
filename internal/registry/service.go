package registry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"

	"melodie/internal/platform/metrics"
	"melodie/pkg/midds/codec"
	"melodie/pkg/platform/audit"
)

// ChainSubmitter carries a framed record onto the chain after it is
// stored locally.
type ChainSubmitter interface {
	SubmitRecord(ctx context.Context, framed []byte) (types.Hash, error)
}

// Service registers validated records and resolves identifier lookups.
type Service struct {
	store   Store
	audit   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	chain   ChainSubmitter
	now     func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the registration timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// WithSubmitter enables best-effort chain submission after local
// registration.
func WithSubmitter(sub ChainSubmitter) ServiceOption {
	return func(s *Service) { s.chain = sub }
}

func NewService(store Store, publisher *audit.Publisher, m *metrics.Metrics, logger *slog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		store:   store,
		audit:   publisher,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a kind-framed SCALE payload and returns the completed
// record. The payload must already have passed validation; Register
// re-checks the frame but not the entity invariants.
func (s *Service) Register(ctx context.Context, framed []byte, clientID string) (Record, error) {
	decoded, err := codec.Decode(framed)
	if err != nil {
		return Record{}, fmt.Errorf("register: %w", err)
	}

	id, err := s.store.NextID(ctx, decoded.Kind)
	if err != nil {
		return Record{}, fmt.Errorf("register: %w", err)
	}

	record := Record{
		Kind:         decoded.Kind,
		ID:           id,
		Payload:      framed,
		Digest:       codec.DigestHex(framed),
		RegisteredBy: clientID,
		RegisteredAt: s.now().UTC(),
	}
	if err := s.store.Save(ctx, record); err != nil {
		return Record{}, fmt.Errorf("register: %w", err)
	}

	s.metrics.RecordsRegistered.WithLabelValues(decoded.Kind.String()).Inc()
	s.logger.InfoContext(ctx, "record registered",
		"kind", decoded.Kind.String(),
		"id", record.ID,
		"digest", record.Digest,
	)
	s.audit.Emit(ctx, audit.Event{
		Type:     audit.EventRecordRegistered,
		ClientID: clientID,
		Kind:     decoded.Kind.String(),
		RecordID: record.ID,
		Digest:   record.Digest,
	})
	s.submitToChain(ctx, record, clientID)
	return record, nil
}

// submitToChain is best effort: the record is already durable locally,
// so a failed or shed submission is logged and the registration stands.
func (s *Service) submitToChain(ctx context.Context, record Record, clientID string) {
	if s.chain == nil {
		return
	}
	hash, err := s.chain.SubmitRecord(ctx, record.Payload)
	if err != nil {
		s.logger.WarnContext(ctx, "chain submission failed",
			"kind", record.Kind.String(),
			"id", record.ID,
			"error", err,
		)
		return
	}
	s.logger.InfoContext(ctx, "record submitted to chain",
		"kind", record.Kind.String(),
		"id", record.ID,
		"extrinsic", hash.Hex(),
	)
	s.audit.Emit(ctx, audit.Event{
		Type:     audit.EventChainSubmitted,
		ClientID: clientID,
		Kind:     record.Kind.String(),
		RecordID: record.ID,
		Digest:   record.Digest,
	})
}

// Get resolves an opaque identifier to its record.
func (s *Service) Get(ctx context.Context, kind codec.Kind, id uint64) (Record, error) {
	return s.store.Find(ctx, kind, id)
}
