// Package metrics exposes Prometheus collectors for grid builds and store
// operations.
package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "zaalplan"

// Store operation results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the zaalplan collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	gridBuilds        prometheus.Counter
	screeningsPlaced  prometheus.Counter
	screeningsSkipped *prometheus.CounterVec
	storeOps          *prometheus.CounterVec
	storeDuration     *prometheus.HistogramVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the instance registered with the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNewMetrics creates the collectors and registers them with reg. Tests
// should pass a fresh prometheus.NewRegistry(). Collectors already present
// in reg are reused; any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		gridBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grid",
			Name:      "builds_total",
			Help:      "Number of week grids built.",
		}),
		screeningsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grid",
			Name:      "screenings_placed_total",
			Help:      "Screenings written into a week grid.",
		}),
		screeningsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grid",
			Name:      "screenings_skipped_total",
			Help:      "Screenings left out of a week grid, by reason.",
		}, []string{"reason"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Store operations by operation and result.",
		}, []string{"op", "result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Time spent in store operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}

	m.gridBuilds = register(reg, m.gridBuilds)
	m.screeningsPlaced = register(reg, m.screeningsPlaced)
	m.screeningsSkipped = register(reg, m.screeningsSkipped)
	m.storeOps = register(reg, m.storeOps)
	m.storeDuration = register(reg, m.storeDuration)

	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveGrid records one grid build.
func (m *Metrics) ObserveGrid(placed int, skipped map[string]int) {
	if m == nil {
		return
	}
	m.gridBuilds.Inc()
	m.screeningsPlaced.Add(float64(placed))
	for reason, n := range skipped {
		m.screeningsSkipped.WithLabelValues(reason).Add(float64(n))
	}
}

// ObserveStore records one store operation. Result is one of ResultOK,
// ResultNotFound or ResultError.
func (m *Metrics) ObserveStore(op, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, result).Inc()
	m.storeDuration.WithLabelValues(op).Observe(d.Seconds())
}
