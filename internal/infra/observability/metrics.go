package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	chatdomain "github.com/boddenberg/firefly-engine-go/internal/chat/domain"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Using a private registry avoids "duplicate collector" panics when
	// NewMetrics is called more than once (e.g. in tests).
	Registry *prometheus.Registry

	commandsTotal      *prometheus.CounterVec
	simulationYears    prometheus.Counter
	simulationDuration prometheus.Histogram
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	playthroughSaves   prometheus.Counter
}

// SessionStats is a point-in-time read of the counters, suitable for an
// end-of-session summary.
type SessionStats struct {
	TotalCommands   float64
	SimulatedYears  float64
	CacheHitRate    float64
	PlaythroughSave float64
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// engine metrics in it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firefly_chat_commands_total",
				Help: "Total chat inputs resolved, by intent.",
			},
			[]string{"intent"},
		),
		simulationYears: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "firefly_simulated_years_total",
				Help: "Total years advanced by the projection engine.",
			},
		),
		simulationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "firefly_simulation_duration_seconds",
				Help:    "Duration of projection-engine advances.",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firefly_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "firefly_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		playthroughSaves: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "firefly_playthrough_saves_total",
				Help: "Total playthroughs persisted.",
			},
		),
	}
}

// IncrCommand increments the per-intent command counter.
func (m *Metrics) IncrCommand(intent string) {
	m.commandsTotal.WithLabelValues(intent).Inc()
}

// ObserveSimulation records one engine advance.
func (m *Metrics) ObserveSimulation(years float64, d time.Duration) {
	m.simulationYears.Add(years)
	m.simulationDuration.Observe(d.Seconds())
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrPlaythroughSave increments the playthrough save counter.
func (m *Metrics) IncrPlaythroughSave() {
	m.playthroughSaves.Inc()
}

// Snapshot gathers current counter values for a session summary.
// Prometheus counters expose cumulative values.
func (m *Metrics) Snapshot() SessionStats {
	var total float64
	for _, intent := range chatdomain.Intents {
		total += getCounterValue(m.commandsTotal, intent)
	}

	hits := getCounterValue(m.cacheHits, "playthroughs")
	misses := getCounterValue(m.cacheMisses, "playthroughs")
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return SessionStats{
		TotalCommands:   total,
		SimulatedYears:  counterValue(m.simulationYears),
		CacheHitRate:    hitRate,
		PlaythroughSave: counterValue(m.playthroughSaves),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for
// a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		return 0
	}
	return metric.GetCounter().GetValue()
}

func counterValue(c prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := c.Write(metric); err != nil {
		return 0
	}
	return metric.GetCounter().GetValue()
}
