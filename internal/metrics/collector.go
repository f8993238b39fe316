package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fibseq"

// Collector owns a private Prometheus registry with the generator metrics.
// A private registry lets several collectors coexist in one process.
type Collector struct {
	registry       *prometheus.Registry
	valuesEmitted  *prometheus.CounterVec
	runs           *prometheus.CounterVec
	recursiveCalls *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheEntries   *prometheus.GaugeVec
	runDuration    *prometheus.HistogramVec
}

// NewCollector creates a collector. Go runtime metrics are included when
// withRuntime is true.
func NewCollector(withRuntime bool) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		valuesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "values_emitted_total",
			Help:      "Number of sequence values emitted.",
		}, []string{"algorithm"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of sequence runs by outcome.",
		}, []string{"algorithm", "status"}),
		recursiveCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recursive_calls_total",
			Help:      "Entries into the memoized recursive step.",
		}, []string{"algorithm"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Lookups answered by the memoization cache.",
		}, []string{"algorithm"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Values computed and inserted into the memoization cache.",
		}, []string{"algorithm"}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Number of indices held by the memoization cache.",
		}, []string{"algorithm"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a sequence run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
	}
	c.registry.MustRegister(
		c.valuesEmitted, c.runs, c.recursiveCalls,
		c.cacheHits, c.cacheMisses, c.cacheEntries, c.runDuration,
	)
	if withRuntime {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	return c
}

// RunStats is what a finished run reports to the collector.
type RunStats struct {
	Algorithm string
	Emitted   int64
	Duration  time.Duration
	Err       error
}

// CacheStats is the cache activity of a memoized generator.
type CacheStats struct {
	Calls   uint64
	Hits    uint64
	Misses  uint64
	Entries int
}

// ObserveRun records a finished run.
func (c *Collector) ObserveRun(s RunStats) {
	status := "success"
	if s.Err != nil {
		status = "error"
	}
	c.runs.WithLabelValues(s.Algorithm, status).Inc()
	c.valuesEmitted.WithLabelValues(s.Algorithm).Add(float64(s.Emitted))
	c.runDuration.WithLabelValues(s.Algorithm).Observe(s.Duration.Seconds())
}

// ObserveCache records the cache activity of a memoized generator.
// The counters are cumulative, so callers pass the delta since the last call.
func (c *Collector) ObserveCache(algorithm string, s CacheStats) {
	c.recursiveCalls.WithLabelValues(algorithm).Add(float64(s.Calls))
	c.cacheHits.WithLabelValues(algorithm).Add(float64(s.Hits))
	c.cacheMisses.WithLabelValues(algorithm).Add(float64(s.Misses))
	c.cacheEntries.WithLabelValues(algorithm).Set(float64(s.Entries))
}

// WriteText writes every gathered metric family to w in the Prometheus
// text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encoding metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
