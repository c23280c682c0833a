package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the turnout feature.
type Metrics struct {
	Updates     *prometheus.CounterVec
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
	TotalVoters prometheus.Gauge
}

// New creates and registers all turnout metrics.
func New() *Metrics {
	return &Metrics{
		Updates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tallyboard_turnout_updates_total",
			Help: "Total number of turnout updates, by audit action.",
		}, []string{"action"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_turnout_cache_hits_total",
			Help: "Dashboard snapshot cache hits.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tallyboard_turnout_cache_misses_total",
			Help: "Dashboard snapshot cache misses.",
		}),
		TotalVoters: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tallyboard_total_voters",
			Help: "Most recently computed total turnout across all stations.",
		}),
	}
}

// RecordUpdate increments the update counter for an audit action.
func (m *Metrics) RecordUpdate(action string) {
	if m == nil {
		return
	}
	m.Updates.WithLabelValues(action).Inc()
}

// RecordCacheHit increments the snapshot cache hit counter.
func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// RecordCacheMiss increments the snapshot cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMisses.Inc()
}

// SetTotalVoters records the latest aggregate total.
func (m *Metrics) SetTotalVoters(total int64) {
	if m == nil {
		return
	}
	m.TotalVoters.Set(float64(total))
}
