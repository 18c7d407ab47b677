package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/fixedcap/config"
	"github.com/c360/fixedcap/errors"
	"github.com/c360/fixedcap/health"
	"github.com/c360/fixedcap/metric"
	"github.com/c360/fixedcap/pkg/buffer"
	"github.com/c360/fixedcap/pkg/spsc"
	"github.com/c360/fixedcap/pkg/worker"
)

// sample is the unit sent through the queue under test.
type sample struct {
	seq  int
	sent time.Time
}

// report summarises one run.
type report struct {
	RunID      string         `json:"run_id"`
	Scenario   string         `json:"scenario"`
	Mode       string         `json:"mode"`
	Slots      int            `json:"slots"`
	Sent       int            `json:"sent"`
	Received   int64          `json:"received"`
	Elapsed    time.Duration  `json:"elapsed"`
	Throughput float64        `json:"throughput"` // items per second
	Queue      spsc.Stats     `json:"queue"`
	Latency    latencySummary `json:"latency"`
	Health     health.Status  `json:"health"`
}

// latencySummary covers the most recent samples kept in the latency window.
type latencySummary struct {
	Samples int           `json:"samples"`
	Min     time.Duration `json:"min"`
	P50     time.Duration `json:"p50"`
	P99     time.Duration `json:"p99"`
	Max     time.Duration `json:"max"`
	Dropped int64         `json:"dropped"` // older samples overwritten
}

// bench wires one producer and one consumer around an SPSC queue.
type bench struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *metric.MetricsRegistry
	timeout  time.Duration

	runID     string
	queue     *spsc.Queue[sample]
	latencies *buffer.Circular[time.Duration]
	next      int

	monitor *health.Monitor
	active  atomic.Pointer[worker.Worker[sample]]
}

func newBench(cfg *config.Config, logger *slog.Logger, registry *metric.MetricsRegistry, shutdownTimeout time.Duration) (*bench, error) {
	b := &bench{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		timeout:  shutdownTimeout,
		runID:    uuid.New().String(),
		monitor:  health.NewMonitor(),
	}

	q, err := spsc.New(cfg.Queue.Slots,
		spsc.WithMode[sample](cfg.QueueMode()),
		spsc.WithMetrics[sample](registry, cfg.Scenario.Name),
	)
	if err != nil {
		return nil, errors.Wrap(err, "bench", "newBench", "create queue")
	}
	b.queue = q

	latencies, err := buffer.NewCircular(cfg.Latency.Window,
		buffer.WithMetrics[time.Duration](registry, cfg.Scenario.Name+"_latency"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "bench", "newBench", "create latency window")
	}
	b.latencies = latencies

	return b, nil
}

// run sends the scenario's items and waits until the consumer has taken
// all of them or something fails.
func (b *bench) run(ctx context.Context) (*report, error) {
	if b.cfg.Scenario.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Scenario.Timeout.Std())
		defer cancel()
	}

	producer, consumer := b.queue.Split()
	core := b.registry.CoreMetrics()
	name := b.cfg.Scenario.Name
	logger := b.logger.With("run_id", b.runID, "scenario", name)

	w, err := worker.New(consumer, b.consume,
		worker.WithName(name),
		worker.WithLogger(logger),
		worker.WithMetrics(core),
		worker.WithBackoff(b.cfg.Queue.Backoff.RetryConfig()),
	)
	if err != nil {
		return nil, err
	}
	sender, err := worker.NewSender(producer,
		worker.WithName(name),
		worker.WithLogger(logger),
		worker.WithMetrics(core),
		worker.WithBackoff(b.cfg.Queue.Backoff.RetryConfig()),
	)
	if err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if b.cfg.Scenario.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.cfg.Scenario.Rate), b.cfg.Scenario.Burst)
	}

	logger.Info("Starting run",
		"items", b.cfg.Scenario.Items,
		"queue_slots", b.cfg.Queue.Slots,
		"mode", b.queue.Mode().String(),
		"rate", b.cfg.Scenario.Rate)

	g, gctx := errgroup.WithContext(ctx)
	if err := w.Start(gctx); err != nil {
		return nil, err
	}
	b.active.Store(w)

	start := time.Now()
	sent := 0

	g.Go(func() error {
		for i := 0; i < b.cfg.Scenario.Items; i++ {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return errors.WrapTransient(err, "bench", "produce", "wait for rate limiter")
				}
			}
			if err := sender.Send(gctx, sample{seq: i, sent: time.Now()}); err != nil {
				return err
			}
			sent++
		}
		return w.Stop(b.timeout)
	})

	g.Go(func() error {
		<-w.Done()
		return w.Err()
	})

	err = g.Wait()
	elapsed := time.Since(start)

	rep := b.report(sent, w.Stats().Processed, elapsed)
	if err != nil {
		return rep, err
	}
	logger.Info("Run complete",
		"sent", rep.Sent,
		"elapsed", rep.Elapsed,
		"throughput", fmt.Sprintf("%.0f/s", rep.Throughput),
		"p50", rep.Latency.P50,
		"p99", rep.Latency.P99,
		"rejected", rep.Queue.Rejected)
	return rep, nil
}

// consume runs on the worker goroutine, which is the only writer of
// latencies and next until the worker has stopped.
func (b *bench) consume(ctx context.Context, s sample) error {
	if s.seq != b.next {
		return errors.WrapFatal(
			fmt.Errorf("out of order: got item %d, expected %d", s.seq, b.next),
			"bench", "consume", "check sequence")
	}
	b.next++

	d := time.Since(s.sent)
	b.latencies.Push(d)
	b.registry.CoreMetrics().RecordTransferDuration(b.cfg.Scenario.Name, d)

	if wt := b.cfg.Scenario.WorkTime.Std(); wt > 0 {
		timer := time.NewTimer(wt)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

func (b *bench) report(sent int, received int64, elapsed time.Duration) *report {
	rep := &report{
		RunID:    b.runID,
		Scenario: b.cfg.Scenario.Name,
		Mode:     b.queue.Mode().String(),
		Slots:    b.cfg.Queue.Slots,
		Sent:     sent,
		Received: received,
		Elapsed:  elapsed,
		Queue:    b.queue.Stats(),
		Latency:  summarize(b.latencies),
		Health:   b.health(),
	}
	if elapsed > 0 {
		rep.Throughput = float64(received) / elapsed.Seconds()
	}
	return rep
}

// saturation is the queue occupancy at which the run reports degraded.
const saturation = 0.9

// health refreshes the monitor from the queue and the running worker and
// returns the aggregate. It is safe to call while the run is in progress.
func (b *bench) health() health.Status {
	b.monitor.Update("queue", health.FromOccupancy("queue", b.queue.Len(), b.queue.Cap(), saturation))
	if w := b.active.Load(); w != nil {
		b.monitor.Update("worker", w.Health())
	}
	return b.monitor.AggregateHealth(appName)
}

func summarize(window *buffer.Circular[time.Duration]) latencySummary {
	values := window.Ordered(make([]time.Duration, 0, window.Len()))
	summary := latencySummary{
		Samples: len(values),
		Dropped: window.Stats().Overwrites(),
	}
	if len(values) == 0 {
		return summary
	}

	slices.Sort(values)
	summary.Min = values[0]
	summary.Max = values[len(values)-1]
	summary.P50 = percentile(values, 0.50)
	summary.P99 = percentile(values, 0.99)
	return summary
}

// percentile picks the nearest-rank value from sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	idx := int(float64(len(sorted))*p+0.5) - 1
	idx = max(0, min(idx, len(sorted)-1))
	return sorted[idx]
}
