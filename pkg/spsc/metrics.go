package spsc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/fixedcap/metric"
)

// registerMetrics exports q's counters as scrape-time functions, so enqueue
// and dequeue do no extra work when metrics are enabled.
func registerMetrics[T any](q *Queue[T], registry metric.MetricsRegistrar, prefix string) error {
	labels := prometheus.Labels{"queue": prefix, "mode": q.mode.String()}

	collectors := []struct {
		name      string
		collector prometheus.Collector
	}{
		{"spsc_enqueued", prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "spsc",
			Name:        "enqueued_total",
			ConstLabels: labels,
			Help:        "Total number of items enqueued",
		}, func() float64 { return float64(q.producer.enqueued.Load()) })},
		{"spsc_rejected", prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "spsc",
			Name:        "rejected_total",
			ConstLabels: labels,
			Help:        "Total number of enqueue attempts rejected because the queue was full",
		}, func() float64 { return float64(q.producer.rejected.Load()) })},
		{"spsc_dequeued", prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace:   "fixedcap",
			Subsystem:   "spsc",
			Name:        "dequeued_total",
			ConstLabels: labels,
			Help:        "Total number of items dequeued",
		}, func() float64 { return float64(q.consumer.dequeued.Load()) })},
		{"spsc_length", prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "fixedcap",
			Subsystem:   "spsc",
			Name:        "length",
			ConstLabels: labels,
			Help:        "Current number of queued items",
		}, func() float64 { return float64(q.Len()) })},
		{"spsc_capacity", prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "fixedcap",
			Subsystem:   "spsc",
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Usable capacity of the queue",
		}, func() float64 { return float64(q.Cap()) })},
	}

	for i, c := range collectors {
		if err := registry.RegisterCollector(prefix, c.name, c.collector); err != nil {
			// leave nothing half-registered
			for _, done := range collectors[:i] {
				registry.Unregister(prefix, done.name)
			}
			return err
		}
	}
	return nil
}
