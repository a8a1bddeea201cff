package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ValidationsTotal      *prometheus.CounterVec
	CertificatesGenerated prometheus.Counter
	CertificateDuration   prometheus.Histogram
	RecordsRegistered     *prometheus.CounterVec
	CacheHits             prometheus.Counter
	CacheMisses           prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "melodie_midds_validations_total",
			Help: "MIDDS validation calls by entity kind and outcome",
		}, []string{"kind", "outcome"}),
		CertificatesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "melodie_certificates_generated_total",
			Help: "Successfully generated certificate PDFs",
		}),
		CertificateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "melodie_certificate_generation_seconds",
			Help:    "Wall time spent rendering certificate PDFs",
			Buckets: prometheus.DefBuckets,
		}),
		RecordsRegistered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "melodie_registry_records_total",
			Help: "Records written to the registry by entity kind",
		}, []string{"kind"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "melodie_registry_cache_hits_total",
			Help: "Registry reads served from the cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "melodie_registry_cache_misses_total",
			Help: "Registry reads that fell through to the store",
		}),
	}
}

// ObserveValidation records a validation call outcome.
func (m *Metrics) ObserveValidation(kind string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.ValidationsTotal.WithLabelValues(kind, outcome).Inc()
}
