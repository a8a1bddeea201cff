//go:build integration

package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"melodie/internal/platform/config"
	platformredis "melodie/internal/platform/redis"
	"melodie/internal/registry"
	"melodie/pkg/midds/codec"
	"melodie/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	client *platformredis.Client
	cached *registry.CachedStore
	inner  *registry.MemoryStore
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())

	client, err := platformredis.New(context.Background(), config.RedisConfig{
		URL:          s.redis.URL,
		PoolSize:     4,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	s.Require().NoError(err)
	s.client = client
}

func (s *CachedStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.inner = registry.NewMemoryStore()
	s.cached = registry.NewCachedStore(s.inner, s.client, time.Minute, testMetrics())
}

func (s *CachedStoreSuite) TestReadThrough() {
	ctx := context.Background()
	record := registry.Record{Kind: codec.KindParty, ID: 1, Payload: []byte{3, 9}, Digest: "0xdd"}
	s.Require().NoError(s.inner.Save(ctx, record))

	// First read misses the cache and falls through.
	found, err := s.cached.Find(ctx, codec.KindParty, 1)
	s.Require().NoError(err)
	s.Equal(record.Payload, found.Payload)

	// Second read is served from the cache: a fresh cached store over an
	// empty inner store still resolves the record.
	empty := registry.NewCachedStore(registry.NewMemoryStore(), s.client, time.Minute, testMetrics())
	found, err = empty.Find(ctx, codec.KindParty, 1)
	s.Require().NoError(err)
	s.Equal(record.Digest, found.Digest)
}

func (s *CachedStoreSuite) TestSavePopulatesCache() {
	ctx := context.Background()
	record := registry.Record{Kind: codec.KindTrack, ID: 5, Payload: []byte{1}, Digest: "0xee"}
	s.Require().NoError(s.cached.Save(ctx, record))

	keys, err := s.redis.Client.Keys(ctx, "melodie:record:*").Result()
	s.Require().NoError(err)
	s.Len(keys, 1)
}

func (s *CachedStoreSuite) TestMissPropagatesNotFound() {
	_, err := s.cached.Find(context.Background(), codec.KindWork, 404)
	s.ErrorIs(err, registry.ErrNotFound)
}
