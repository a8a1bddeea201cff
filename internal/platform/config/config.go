package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment.
type Config struct {
	Addr          string
	MetricsAddr   string
	JWTSigningKey string

	// LenientCertificates switches the PDF generator to glyph
	// substitution instead of rejecting unsupported text.
	LenientCertificates bool

	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
	Chain       ChainConfig
	RateLimit   RateLimitConfig
}

// RateLimitConfig bounds per-client request rates on the validation
// endpoints.
type RateLimitConfig struct {
	Disabled bool
	Requests int
	Window   time.Duration
}

// RedisConfig configures the registry read-through cache. An empty URL
// disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	TTL          time.Duration
}

// KafkaConfig configures the audit event publisher. Empty brokers disable
// publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ChainConfig configures the Substrate RPC adapter. An empty URL leaves
// the server running without chain submission. Seed is the signer's
// secret URI; empty falls back to the well-known dev keyring.
type ChainConfig struct {
	URL  string
	Seed string
}

// FromEnv builds a Config from MELODIE_* environment variables so main
// stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:                envOr("MELODIE_ADDR", ":8080"),
		MetricsAddr:         envOr("MELODIE_METRICS_ADDR", ":9090"),
		JWTSigningKey:       envOr("MELODIE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		LenientCertificates: os.Getenv("MELODIE_LENIENT_CERTIFICATES") == "true",
		DatabaseURL:         os.Getenv("MELODIE_DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("MELODIE_REDIS_URL"),
			PoolSize:     envOrInt("MELODIE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envOrInt("MELODIE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envOrDuration("MELODIE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envOrDuration("MELODIE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envOrDuration("MELODIE_REDIS_WRITE_TIMEOUT", 3*time.Second),
			TTL:          envOrDuration("MELODIE_REDIS_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Topic: envOr("MELODIE_KAFKA_TOPIC", "melodie.audit"),
		},
		Chain: ChainConfig{
			URL:  os.Getenv("MELODIE_CHAIN_URL"),
			Seed: os.Getenv("MELODIE_CHAIN_SEED"),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("MELODIE_RATELIMIT_DISABLED") == "true",
			Requests: envOrInt("MELODIE_RATELIMIT_REQUESTS", 60),
			Window:   envOrDuration("MELODIE_RATELIMIT_WINDOW", time.Minute),
		},
	}
	if brokers := os.Getenv("MELODIE_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
