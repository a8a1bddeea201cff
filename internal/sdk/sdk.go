// Package sdk is the host-facing boundary: JSON payloads in, SCALE-framed
// runtime bytes and PDF certificates out. All types crossing the boundary
// are value snapshots.
package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"melodie/internal/platform/metrics"
	"melodie/pkg/certificate"
	"melodie/pkg/midds/codec"
	"melodie/pkg/midds/party"
	"melodie/pkg/midds/release"
	"melodie/pkg/midds/track"
	"melodie/pkg/midds/work"
)

// Version is the SDK version reported to hosts.
const Version = "0.3.0"

// Adapter wires the pure core to hosts and observability.
type Adapter struct {
	generator *certificate.Generator
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithClock overrides the reference-time source used for year bounds.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

func New(generator *certificate.Generator, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Adapter {
	a := &Adapter{
		generator: generator,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("melodie/sdk"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ValidateMIDDS parses a JSON std form of the given kind, validates it,
// and returns the kind-framed SCALE runtime bytes.
func (a *Adapter) ValidateMIDDS(ctx context.Context, kind string, payload []byte) ([]byte, error) {
	ctx, span := a.tracer.Start(ctx, "sdk.ValidateMIDDS",
		trace.WithAttributes(attribute.String("midds.kind", kind)))
	defer span.End()

	k, err := codec.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	framed, err := a.validate(k, payload)
	a.metrics.ObserveValidation(string(k), err == nil)
	if err != nil {
		a.logger.WarnContext(ctx, "midds validation failed",
			"kind", k.String(),
			"error", err,
		)
		return nil, err
	}
	a.logger.DebugContext(ctx, "midds validated",
		"kind", k.String(),
		"bytes", len(framed),
	)
	return framed, nil
}

func (a *Adapter) validate(k codec.Kind, payload []byte) ([]byte, error) {
	ref := a.now()
	switch k {
	case codec.KindWork:
		var std work.MusicalWork
		if err := json.Unmarshal(payload, &std); err != nil {
			return nil, fmt.Errorf("sdk: decode %s payload: %w", k, err)
		}
		rt, err := work.ToRuntime(std, ref)
		if err != nil {
			return nil, err
		}
		return codec.Encode(k, rt)
	case codec.KindTrack:
		var std track.Track
		if err := json.Unmarshal(payload, &std); err != nil {
			return nil, fmt.Errorf("sdk: decode %s payload: %w", k, err)
		}
		rt, err := track.ToRuntime(std, ref)
		if err != nil {
			return nil, err
		}
		return codec.Encode(k, rt)
	case codec.KindRelease:
		var std release.Release
		if err := json.Unmarshal(payload, &std); err != nil {
			return nil, fmt.Errorf("sdk: decode %s payload: %w", k, err)
		}
		rt, err := release.ToRuntime(std)
		if err != nil {
			return nil, err
		}
		return codec.Encode(k, rt)
	case codec.KindParty:
		var std party.Identifier
		if err := json.Unmarshal(payload, &std); err != nil {
			return nil, fmt.Errorf("sdk: decode %s payload: %w", k, err)
		}
		rt, err := party.ToRuntime(std)
		if err != nil {
			return nil, err
		}
		return codec.Encode(k, rt)
	}
	return nil, codec.ErrUnknownKind
}

// GenerateCertificate renders a certificate snapshot to PDF bytes.
func (a *Adapter) GenerateCertificate(ctx context.Context, data certificate.Data) ([]byte, error) {
	ctx, span := a.tracer.Start(ctx, "sdk.GenerateCertificate")
	defer span.End()

	start := time.Now()
	out, err := a.generator.Generate(data)
	if err != nil {
		a.logger.WarnContext(ctx, "certificate generation failed", "error", err)
		return nil, err
	}
	a.metrics.CertificateDuration.Observe(time.Since(start).Seconds())
	a.metrics.CertificatesGenerated.Inc()
	a.logger.DebugContext(ctx, "certificate generated", "bytes", len(out))
	return out, nil
}

// SdkVersion reports the SDK version string.
func (a *Adapter) SdkVersion() string { return Version }
