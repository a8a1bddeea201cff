package registry_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"melodie/internal/platform/metrics"
	"melodie/internal/registry"
	"melodie/pkg/midds/codec"
	"melodie/pkg/midds/party"
)

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics.Metrics
)

func testMetrics() *metrics.Metrics {
	metricsOnce.Do(func() { sharedMetrics = metrics.New() })
	return sharedMetrics
}

func framedParty(t *testing.T, name string) []byte {
	t.Helper()
	std, err := party.NewArtist(name).TryBuild()
	require.NoError(t, err)
	rt, err := party.ToRuntime(std)
	require.NoError(t, err)
	framed, err := codec.Encode(codec.KindParty, rt)
	require.NoError(t, err)
	return framed
}

type MemoryStoreSuite struct {
	suite.Suite
	store *registry.MemoryStore
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = registry.NewMemoryStore()
}

func (s *MemoryStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	record := registry.Record{Kind: codec.KindParty, ID: 1, Payload: []byte{3, 0}}

	s.Require().NoError(s.store.Save(ctx, record))

	found, err := s.store.Find(ctx, codec.KindParty, 1)
	s.Require().NoError(err)
	s.Equal(record.Payload, found.Payload)

	_, err = s.store.Find(ctx, codec.KindWork, 1)
	s.ErrorIs(err, registry.ErrNotFound)
}

func (s *MemoryStoreSuite) TestSaveConflict() {
	ctx := context.Background()
	record := registry.Record{Kind: codec.KindParty, ID: 1}
	s.Require().NoError(s.store.Save(ctx, record))
	s.ErrorIs(s.store.Save(ctx, record), registry.ErrConflict)
}

func (s *MemoryStoreSuite) TestNextIDPerKind() {
	ctx := context.Background()
	for want := uint64(1); want <= 3; want++ {
		id, err := s.store.NextID(ctx, codec.KindTrack)
		s.Require().NoError(err)
		s.Equal(want, id)
	}
	id, err := s.store.NextID(ctx, codec.KindWork)
	s.Require().NoError(err)
	s.Equal(uint64(1), id, "sequences are independent per kind")
}

func TestServiceRegisterAndGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := registry.NewService(
		registry.NewMemoryStore(),
		nil, // audit disabled
		testMetrics(),
		slog.New(slog.DiscardHandler),
		registry.WithClock(func() time.Time { return now }),
	)

	framed := framedParty(t, "Nina Simone")
	record, err := svc.Register(ctx, framed, "client-1")
	require.NoError(t, err)
	assert.Equal(t, codec.KindParty, record.Kind)
	assert.Equal(t, uint64(1), record.ID)
	assert.Equal(t, codec.DigestHex(framed), record.Digest)
	assert.Equal(t, now, record.RegisteredAt)
	assert.Equal(t, "client-1", record.RegisteredBy)

	got, err := svc.Get(ctx, codec.KindParty, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

type fakeSubmitter struct {
	framed [][]byte
	err    error
}

func (f *fakeSubmitter) SubmitRecord(_ context.Context, framed []byte) (types.Hash, error) {
	f.framed = append(f.framed, framed)
	if f.err != nil {
		return types.Hash{}, f.err
	}
	return types.Hash{0x42}, nil
}

func TestServiceRegisterSubmitsToChain(t *testing.T) {
	sub := &fakeSubmitter{}
	svc := registry.NewService(
		registry.NewMemoryStore(), nil, testMetrics(), slog.New(slog.DiscardHandler),
		registry.WithSubmitter(sub),
	)

	framed := framedParty(t, "Nina Simone")
	record, err := svc.Register(context.Background(), framed, "client-1")
	require.NoError(t, err)

	require.Len(t, sub.framed, 1)
	assert.Equal(t, framed, sub.framed[0])
	assert.Equal(t, uint64(1), record.ID)
}

func TestServiceRegisterSurvivesChainFailure(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("node unreachable")}
	svc := registry.NewService(
		registry.NewMemoryStore(), nil, testMetrics(), slog.New(slog.DiscardHandler),
		registry.WithSubmitter(sub),
	)

	framed := framedParty(t, "Nina Simone")
	record, err := svc.Register(context.Background(), framed, "client-1")
	require.NoError(t, err)

	// The record is durable locally even when submission fails.
	got, err := svc.Get(context.Background(), codec.KindParty, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestServiceRegisterRejectsBadFrame(t *testing.T) {
	svc := registry.NewService(
		registry.NewMemoryStore(), nil, testMetrics(), slog.New(slog.DiscardHandler),
	)
	_, err := svc.Register(context.Background(), []byte{0xEE}, "client-1")
	assert.ErrorIs(t, err, codec.ErrUnknownKind)
}
