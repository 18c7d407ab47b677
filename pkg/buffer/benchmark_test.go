package buffer

import (
	"fmt"
	"testing"

	"github.com/c360/fixedcap/metric"
)

func BenchmarkCircularPush(b *testing.B) {
	for _, capacity := range []int{16, 1024, 65536} {
		b.Run(fmt.Sprintf("cap=%d", capacity), func(b *testing.B) {
			buf, err := NewCircular[int](capacity)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf.Push(i)
			}
		})
	}
}

func BenchmarkCircularPushWithMetrics(b *testing.B) {
	buf, err := NewCircular(1024, WithMetrics[int](metric.NewMetricsRegistry(), "bench"))
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Push(i)
	}
}

func BenchmarkCircularOrdered(b *testing.B) {
	buf, err := NewCircular[int](1024)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 1500; i++ {
		buf.Push(i)
	}
	dst := make([]int, 0, buf.Cap())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = buf.Ordered(dst[:0])
	}
}
