// main wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"melodie/internal/chain"
	"melodie/internal/platform/config"
	"melodie/internal/platform/httpserver"
	"melodie/internal/platform/logger"
	"melodie/internal/platform/metrics"
	"melodie/internal/platform/ratelimit"
	platformredis "melodie/internal/platform/redis"
	"melodie/internal/platform/token"
	"melodie/internal/registry"
	"melodie/internal/sdk"
	httptransport "melodie/internal/transport/http"
	"melodie/pkg/certificate"
	"melodie/pkg/platform/audit"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var genOpts []certificate.Option
	if cfg.LenientCertificates {
		genOpts = append(genOpts, certificate.WithLenientText())
	}
	adapter := sdk.New(certificate.NewGenerator(genOpts...), log, m)

	var store registry.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		store = registry.NewPostgresStore(pool)
	} else {
		log.Warn("no database configured, using in-memory registry store")
		store = registry.NewMemoryStore()
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = registry.NewCachedStore(store, redisClient, cfg.Redis.TTL, m)
	}

	publisher, err := audit.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
	if err != nil {
		log.Error("audit publisher setup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publisher.Close(flushCtx); err != nil {
			log.Error("audit publisher close failed", "error", err)
		}
	}()

	signer := signature.TestKeyringPairAlice
	if cfg.Chain.Seed != "" {
		signer, err = signature.KeyringPairFromSecret(cfg.Chain.Seed, 42)
		if err != nil {
			log.Error("chain signer setup failed", "error", err)
			os.Exit(1)
		}
	}
	chainClient, err := chain.Dial(cfg.Chain.URL, signer)
	if err != nil {
		log.Error("chain dial failed", "error", err)
		os.Exit(1)
	}

	var regOpts []registry.ServiceOption
	if chainClient != nil {
		regOpts = append(regOpts, registry.WithSubmitter(chainClient))
	}
	regSvc := registry.NewService(store, publisher, m, log, regOpts...)
	tokens := token.NewService(cfg.JWTSigningKey, "melodie", "registry")

	var limitStore ratelimit.Store = ratelimit.NewMemoryStore()
	if redisClient != nil {
		limitStore = ratelimit.NewRedisStore(redisClient.Client)
	}
	limiter := ratelimit.NewMiddleware(
		ratelimit.NewLimiter(limitStore, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		log,
		ratelimit.WithDisabled(cfg.RateLimit.Disabled),
	)

	handler := httptransport.NewHandler(adapter, regSvc, publisher, log)
	apiSrv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler, tokens, limiter, log))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting melodie api", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("starting metrics endpoint", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		if err := httpserver.Shutdown(apiSrv, 10*time.Second); err != nil {
			return err
		}
		return httpserver.Shutdown(metricsSrv, 10*time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
