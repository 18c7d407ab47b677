package buffer

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/fixedcap/metric"
)

// bufferMetrics holds Prometheus metrics for buffer operations.
type bufferMetrics struct {
	writes     prometheus.Counter
	overwrites prometheus.Counter
	drops      prometheus.Counter

	size        prometheus.Gauge
	utilization prometheus.Gauge
}

// newBufferMetrics creates and registers buffer metrics with the provided registry.
func newBufferMetrics(registry metric.MetricsRegistrar, prefix string) (*bufferMetrics, error) {
	labels := prometheus.Labels{"component": prefix}
	m := &bufferMetrics{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "buffer",
			Name:        "writes_total",
			ConstLabels: labels,
			Help:        "Total number of buffer pushes",
		}),
		overwrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "buffer",
			Name:        "overwrites_total",
			ConstLabels: labels,
			Help:        "Total number of pushes that replaced the oldest value",
		}),
		drops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "buffer",
			Name:        "drops_total",
			ConstLabels: labels,
			Help:        "Total number of values dropped by overwrite or clear",
		}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "fixedcap",
			Subsystem:   "buffer",
			Name:        "size",
			ConstLabels: labels,
			Help:        "Current number of values in buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "fixedcap",
			Subsystem:   "buffer",
			Name:        "utilization",
			ConstLabels: labels,
			Help:        "Buffer utilization as a fraction of capacity (0.0 to 1.0)",
		}),
	}

	registered := make([]string, 0, 5)
	register := func(name string, err error) error {
		if err != nil {
			for _, done := range registered {
				registry.Unregister(prefix, done)
			}
			return err
		}
		registered = append(registered, name)
		return nil
	}

	if err := register("buffer_writes", registry.RegisterCounter(prefix, "buffer_writes", m.writes)); err != nil {
		return nil, err
	}
	if err := register("buffer_overwrites", registry.RegisterCounter(prefix, "buffer_overwrites", m.overwrites)); err != nil {
		return nil, err
	}
	if err := register("buffer_drops", registry.RegisterCounter(prefix, "buffer_drops", m.drops)); err != nil {
		return nil, err
	}
	if err := register("buffer_size", registry.RegisterGauge(prefix, "buffer_size", m.size)); err != nil {
		return nil, err
	}
	if err := register("buffer_utilization", registry.RegisterGauge(prefix, "buffer_utilization", m.utilization)); err != nil {
		return nil, err
	}

	return m, nil
}

// recordWrite counts a push and refreshes size and utilization.
func (m *bufferMetrics) recordWrite(size, capacity int, overwrote bool) {
	m.writes.Inc()
	if overwrote {
		m.overwrites.Inc()
		return
	}
	m.updateSize(size, capacity)
}

// recordDrop increments the drop counter.
func (m *bufferMetrics) recordDrop() {
	m.drops.Inc()
}

// updateSize sets the current buffer size and utilization.
func (m *bufferMetrics) updateSize(size, capacity int) {
	m.size.Set(float64(size))
	m.utilization.Set(float64(size) / float64(capacity))
}
