// Package metric provides Prometheus-based metrics collection and an HTTP server
// for fixedcap queues and buffers.
//
// The package offers a centralized metrics registry managing both core transfer
// metrics and metrics registered by individual container instances. It includes an
// HTTP server exposing everything in Prometheus format.
//
// # Architecture
//
//  1. Core Metrics: transfer counters and worker status, registered automatically (Metrics type)
//  2. Container Registry: per-instance registration (MetricsRegistrar interface)
//  3. HTTP Server: metrics endpoint plus a health check (Server type)
//
// Containers never depend on the registry for correctness. Their own statistics are
// always-on atomics; Prometheus is an optional export of the same counts.
//
// # Basic Usage
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        slog.Error("metrics server failed", "error", err)
//	    }
//	}()
//	defer server.Stop()
//
//	core := registry.CoreMetrics()
//	core.RecordTransfer("orders", metric.DirectionEnqueued, 1)
//	core.RecordTransferDuration("orders", time.Since(enqueuedAt))
//
// # Core Metrics
//
//   - fixedcap_transfer_items_total{queue,direction}: enqueued, dequeued, rejected
//   - fixedcap_transfer_backoffs_total{queue,side}: waits on a full or empty queue
//   - fixedcap_transfer_duration_seconds{queue}: enqueue-to-dequeue latency
//   - fixedcap_worker_status{worker}: 0=stopped 1=starting 2=running 3=stopping 4=failed
//
// Go runtime and process collectors are registered alongside.
//
// # Container Metrics
//
// Containers register through MetricsRegistrar using their own prefix as the service
// name. Registration of the same serviceName.metricName twice fails with an invalid
// error; two instances sharing a Prometheus descriptor must differ in ConstLabels:
//
//	writes := prometheus.NewCounter(prometheus.CounterOpts{
//	    Namespace:   "fixedcap",
//	    Subsystem:   "buffer",
//	    Name:        "writes_total",
//	    Help:        "Total writes",
//	    ConstLabels: prometheus.Labels{"component": prefix},
//	})
//	if err := registrar.RegisterCounter(prefix, "buffer_writes", writes); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// MetricsRegistry is safe for concurrent registration. Prometheus collectors are safe
// for concurrent updates.
package metric
