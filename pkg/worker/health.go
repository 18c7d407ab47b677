package worker

import (
	"time"

	"github.com/c360/fixedcap/health"
)

// Health reports the worker as degraded before Start, unhealthy after a
// fatal processor error, and healthy otherwise.
// It is safe to call from any goroutine.
func (w *Worker[T]) Health() health.Status {
	w.lifecycleMu.Lock()
	started, startedAt, err := w.started, w.startedAt, w.err
	w.lifecycleMu.Unlock()

	var status health.Status
	switch {
	case !started:
		return health.NewDegraded(w.name, "not started")
	case err != nil:
		status = health.FromError(w.name, err)
	case w.exited():
		status = health.NewHealthy(w.name, "stopped")
	default:
		status = health.NewHealthy(w.name, "running")
	}

	m := &health.Metrics{
		Uptime:         time.Since(startedAt),
		ErrorCount:     w.failed.Load(),
		ItemsProcessed: w.processed.Load(),
		Pending:        w.consumer.Len(),
		Capacity:       w.consumer.Cap(),
	}
	if last := w.lastItem.Load(); last > 0 {
		m.LastActivity = time.Unix(0, last)
	}
	return status.WithMetrics(m)
}

func (w *Worker[T]) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}
