package spsc

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ConcurrentSuite runs one producer and one consumer goroutine against a
// shared queue and checks strict FIFO delivery with no loss or duplication.
type ConcurrentSuite struct {
	suite.Suite
	mode  Mode
	items int
}

func (s *ConcurrentSuite) SetupSuite() {
	s.items = 200_000
	if testing.Short() {
		s.items = 20_000
	}
}

func (s *ConcurrentSuite) transfer(slots int) {
	q, err := New(slots, WithMode[int](s.mode))
	s.Require().NoError(err)
	p, c := q.Split()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < s.items; i++ {
			for p.Enqueue(i) != nil {
				runtime.Gosched()
			}
		}
	}()

	received := 0
	outOfOrder := 0
	for received < s.items {
		v, ok := c.Dequeue()
		if !ok {
			runtime.Gosched()
			continue
		}
		if v != received {
			outOfOrder++
		}
		received++
	}
	wg.Wait()

	s.Zero(outOfOrder, "values must arrive in enqueue order")
	s.True(q.IsEmpty())
	stats := q.Stats()
	s.Equal(uint64(s.items), stats.Enqueued)
	s.Equal(uint64(s.items), stats.Dequeued)
}

func (s *ConcurrentSuite) TestSmallestQueue() {
	s.transfer(2)
}

func (s *ConcurrentSuite) TestSmallQueue() {
	s.transfer(4)
}

func (s *ConcurrentSuite) TestLargeQueue() {
	s.transfer(1024)
}

func (s *ConcurrentSuite) TestLenStaysInRange() {
	q, err := New(16, WithMode[int](s.mode))
	s.Require().NoError(err)
	p, c := q.Split()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < s.items/10; i++ {
			for p.Enqueue(i) != nil {
				runtime.Gosched()
			}
		}
	}()

	bad := 0
	received := 0
	for received < s.items/10 {
		if n := q.Len(); n < 0 || n > q.Cap() {
			bad++
		}
		if _, ok := c.Dequeue(); ok {
			received++
		} else {
			runtime.Gosched()
		}
	}
	<-done
	s.Zero(bad, "Len must always be within [0, Cap]")
}

func TestConcurrentCrossCore(t *testing.T) {
	suite.Run(t, &ConcurrentSuite{mode: CrossCore})
}

func TestConcurrentSingleCore(t *testing.T) {
	suite.Run(t, &ConcurrentSuite{mode: SingleCore})
}

func BenchmarkQueue_PingPong(b *testing.B) {
	for _, mode := range modes {
		b.Run(mode.String(), func(b *testing.B) {
			q := MustNew(1024, WithMode[int](mode))
			p, c := q.Split()

			done := make(chan struct{})
			go func() {
				defer close(done)
				for i := 0; i < b.N; i++ {
					for p.Enqueue(i) != nil {
						runtime.Gosched()
					}
				}
			}()

			b.ReportAllocs()
			b.ResetTimer()
			for n := 0; n < b.N; {
				if _, ok := c.Dequeue(); ok {
					n++
				} else {
					runtime.Gosched()
				}
			}
			<-done
		})
	}
}
