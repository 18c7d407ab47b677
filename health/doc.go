// Package health reports the state of queues and workers as healthy,
// degraded, or unhealthy.
//
// A Status is a point-in-time value. FromOccupancy derives one from how
// full a bounded container is and FromError from the last fatal error.
// Monitor keeps the latest Status per name and aggregates them; the
// metrics server serves the aggregate on /health.
//
//	monitor := health.NewMonitor()
//	monitor.Update("queue", health.FromOccupancy("queue", q.Len(), q.Cap(), 0.9))
//	monitor.Update("worker", w.Health())
//	overall := monitor.AggregateHealth("spscbench")
package health
