// Package metrics holds the Prometheus collectors for loading and caching.
// Every method is safe on a nil *Metrics so callers can run without them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	FilesLoaded   prometheus.Counter
	FilesSkipped  *prometheus.CounterVec
	RecordsLoaded prometheus.Counter
	DegradedCells prometheus.Counter
	LoadDuration  prometheus.Histogram

	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	CacheEvictions prometheus.Counter
}

// New builds the collectors and registers them with reg. A nil reg leaves
// them unregistered, which tests use to avoid global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_loader_files_loaded_total",
			Help: "History files parsed into records",
		}),
		FilesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_loader_files_skipped_total",
			Help: "Sources or files skipped during a load by reason",
		}, []string{"reason"}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_loader_records_total",
			Help: "Canonical records produced by loads",
		}),
		DegradedCells: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_normalize_degraded_cells_total",
			Help: "Cells replaced by a default value during normalization",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "portfolio_loader_duration_seconds",
			Help:    "Wall time of a full portfolio load",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_cache_hits_total",
			Help: "Cache lookups served from a fresh entry",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_cache_misses_total",
			Help: "Cache lookups that found no fresh entry",
		}),
		CacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portfolio_cache_evictions_total",
			Help: "Entries dropped for expiry or capacity",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.FilesLoaded,
			m.FilesSkipped,
			m.RecordsLoaded,
			m.DegradedCells,
			m.LoadDuration,
			m.CacheHits,
			m.CacheMisses,
			m.CacheEvictions,
		)
	}
	return m
}

func (m *Metrics) FileLoaded(records int) {
	if m == nil {
		return
	}
	m.FilesLoaded.Inc()
	m.RecordsLoaded.Add(float64(records))
}

func (m *Metrics) FileSkipped(reason string) {
	if m == nil {
		return
	}
	m.FilesSkipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) Degraded(cells int) {
	if m == nil || cells <= 0 {
		return
	}
	m.DegradedCells.Add(float64(cells))
}

func (m *Metrics) ObserveLoad(d time.Duration) {
	if m == nil {
		return
	}
	m.LoadDuration.Observe(d.Seconds())
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) CacheEviction() {
	if m == nil {
		return
	}
	m.CacheEvictions.Inc()
}
