package worker

import (
	"log/slog"

	"github.com/c360/fixedcap/metric"
	"github.com/c360/fixedcap/pkg/retry"
)

// Queue sides used as the side label on backoff metrics.
const (
	SideProducer = "producer"
	SideConsumer = "consumer"
)

// Option configures a Worker or a Sender.
type Option func(*settings)

type settings struct {
	name    string
	logger  *slog.Logger
	metrics *metric.Metrics
	backoff retry.Config
}

// WithName sets the queue name used in logs and metric labels.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records transfers, backoffs and worker status into the core
// metrics. Ignored if m is nil.
func WithMetrics(m *metric.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithBackoff sets the polling backoff used while the queue is empty
// (Worker) or full (Sender). Defaults to retry.Spin().
func WithBackoff(cfg retry.Config) Option {
	return func(s *settings) {
		s.backoff = cfg
	}
}

func applyOptions(opts []Option) *settings {
	s := &settings{
		name:    "spsc",
		logger:  slog.Default(),
		backoff: retry.Spin(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}
