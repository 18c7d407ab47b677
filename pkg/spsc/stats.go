package spsc

import "fmt"

// Stats is a snapshot of a queue's counters. Each counter has a single
// writer (Enqueued and Rejected the producer, Dequeued and Dropped the
// consumer), so a snapshot taken under concurrency is consistent per field
// but not across fields.
type Stats struct {
	Enqueued uint64 `json:"enqueued"`
	Rejected uint64 `json:"rejected"`
	Dequeued uint64 `json:"dequeued"` // includes items removed by Drain
	Dropped  uint64 `json:"dropped"`  // removed by Drain
	Len      int    `json:"len"`
	Cap      int    `json:"cap"`
}

// Stats returns the queue's counters.
func (q *Queue[T]) Stats() Stats {
	return Stats{
		Enqueued: q.producer.enqueued.Load(),
		Rejected: q.producer.rejected.Load(),
		Dequeued: q.consumer.dequeued.Load(),
		Dropped:  q.consumer.dropped.Load(),
		Len:      q.Len(),
		Cap:      q.Cap(),
	}
}

// RejectRate is Rejected over all enqueue attempts.
func (s Stats) RejectRate() float64 {
	attempts := s.Enqueued + s.Rejected
	if attempts == 0 {
		return 0
	}
	return float64(s.Rejected) / float64(attempts)
}

// Utilization is Len over Cap.
func (s Stats) Utilization() float64 {
	if s.Cap == 0 {
		return 0
	}
	return float64(s.Len) / float64(s.Cap)
}

// String formats the snapshot for logs.
func (s Stats) String() string {
	return fmt.Sprintf("enqueued=%d dequeued=%d rejected=%d dropped=%d len=%d/%d",
		s.Enqueued, s.Dequeued, s.Rejected, s.Dropped, s.Len, s.Cap)
}
