// Package buffer provides Circular, a fixed-capacity ring buffer that keeps
// the most recent values and never rejects a write.
//
// # Overview
//
// A Circular of capacity C holds at most C values. Push writes at the cursor
// and advances it modulo C; once the buffer is full every Push replaces the
// oldest value, which is handed to the drop callback if one is configured.
// The buffer is meant for "last N samples" workloads such as latency windows
// or recent-event logs. It is not safe for concurrent use.
//
// # Quick Start
//
//	buf, err := buffer.NewCircular[time.Duration](1024)
//	if err != nil {
//		return err
//	}
//	buf.Push(elapsed)
//
//	recent := buf.Ordered(nil) // oldest first
//
// # Views
//
// AsSlice returns the backing storage without rotating it: while filling it is
// the pushed prefix, and once full it is the whole array with the oldest
// value at Index. Use Ordered, All, Oldest and Newest for chronological
// access.
//
// # Observability
//
// Statistics are always collected and may be read from any goroutine:
//
//	stats := buf.Stats()
//	fmt.Printf("overwrite rate: %.2f\n", stats.OverwriteRate())
//
// Prometheus metrics are opt-in:
//
//	buf, err := buffer.NewCircular[float64](512,
//		buffer.WithMetrics[float64](registry, "latency_window"),
//	)
//
// Exported series live under fixedcap_buffer_* with a component label.
package buffer
