package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Transfer directions recorded by RecordTransfer.
const (
	DirectionEnqueued = "enqueued"
	DirectionDequeued = "dequeued"
	DirectionRejected = "rejected"
)

// Worker status values recorded by RecordWorkerStatus.
const (
	WorkerStopped = iota
	WorkerStarting
	WorkerRunning
	WorkerStopping
	WorkerFailed
)

// Metrics contains the module-level transfer metrics shared by every queue driver
type Metrics struct {
	TransferItems    *prometheus.CounterVec
	TransferBackoffs *prometheus.CounterVec
	TransferDuration *prometheus.HistogramVec
	WorkerStatus     *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all transfer metrics
func NewMetrics() *Metrics {
	return &Metrics{
		TransferItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fixedcap",
				Subsystem: "transfer",
				Name:      "items_total",
				Help:      "Items moved through a queue, by direction (enqueued, dequeued, rejected)",
			},
			[]string{"queue", "direction"},
		),

		TransferBackoffs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fixedcap",
				Subsystem: "transfer",
				Name:      "backoffs_total",
				Help:      "Backoff waits taken because a queue was full (producer) or empty (consumer)",
			},
			[]string{"queue", "side"},
		),

		TransferDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fixedcap",
				Subsystem: "transfer",
				Name:      "duration_seconds",
				Help:      "Time from enqueue to dequeue in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"queue"},
		),

		WorkerStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "fixedcap",
				Subsystem: "worker",
				Name:      "status",
				Help:      "Worker status (0=stopped, 1=starting, 2=running, 3=stopping, 4=failed)",
			},
			[]string{"worker"},
		),
	}
}

// RecordTransfer adds n items to the transfer counter for queue and direction
func (c *Metrics) RecordTransfer(queue, direction string, n int) {
	c.TransferItems.WithLabelValues(queue, direction).Add(float64(n))
}

// RecordBackoff increments the backoff counter for one side of a queue
func (c *Metrics) RecordBackoff(queue, side string) {
	c.TransferBackoffs.WithLabelValues(queue, side).Inc()
}

// RecordTransferDuration records the enqueue-to-dequeue latency of one item
func (c *Metrics) RecordTransferDuration(queue string, d time.Duration) {
	c.TransferDuration.WithLabelValues(queue).Observe(d.Seconds())
}

// RecordWorkerStatus updates the worker status gauge
func (c *Metrics) RecordWorkerStatus(worker string, status int) {
	c.WorkerStatus.WithLabelValues(worker).Set(float64(status))
}
