package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubContainer registers per-instance metrics the way the buffer and queue packages do
type stubContainer struct {
	name    string
	metrics struct {
		writes prometheus.Counter
		size   prometheus.Gauge
	}
}

func newStubContainer(name string) *stubContainer {
	return &stubContainer{name: name}
}

func (s *stubContainer) registerMetrics(registrar MetricsRegistrar, constLabels bool) error {
	var labels prometheus.Labels
	if constLabels {
		labels = prometheus.Labels{"component": s.name}
	}

	s.metrics.writes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "fixedcap",
		Subsystem:   "stub",
		Name:        "writes_total",
		Help:        "Total number of writes",
		ConstLabels: labels,
	})
	if err := registrar.RegisterCounter(s.name, "writes_total", s.metrics.writes); err != nil {
		return err
	}

	s.metrics.size = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "fixedcap",
		Subsystem:   "stub",
		Name:        "size",
		Help:        "Current number of held items",
		ConstLabels: labels,
	})
	return registrar.RegisterGauge(s.name, "size", s.metrics.size)
}

func (s *stubContainer) push(n int) {
	s.metrics.writes.Add(float64(n))
	s.metrics.size.Set(float64(n))
}

func gatheredNames(t *testing.T, registry *MetricsRegistry) map[string]bool {
	t.Helper()
	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	return names
}

func TestMetricsIntegration_ContainerRegistration(t *testing.T) {
	registry := NewMetricsRegistry()

	c := newStubContainer("latencies")
	require.NoError(t, c.registerMetrics(registry, true))
	c.push(4)

	names := gatheredNames(t, registry)
	assert.True(t, names["fixedcap_stub_writes_total"])
	assert.True(t, names["fixedcap_stub_size"])
}

func TestMetricsIntegration_SameNameRejected(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, newStubContainer("twin").registerMetrics(registry, true))

	err := newStubContainer("twin").registerMetrics(registry, true)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestMetricsIntegration_ConstLabelsAllowCoexistence(t *testing.T) {
	registry := NewMetricsRegistry()

	a := newStubContainer("a")
	b := newStubContainer("b")
	require.NoError(t, a.registerMetrics(registry, true))
	require.NoError(t, b.registerMetrics(registry, true))

	a.push(1)
	b.push(2)

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "fixedcap_stub_writes_total" {
			assert.Len(t, mf.GetMetric(), 2)
		}
	}
}

func TestMetricsIntegration_WithoutConstLabelsConflicts(t *testing.T) {
	registry := NewMetricsRegistry()

	require.NoError(t, newStubContainer("first").registerMetrics(registry, false))

	// Different service key, identical Prometheus descriptor
	err := newStubContainer("second").registerMetrics(registry, false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "prometheus conflict")
}

func TestMetricsIntegration_CoreAndContainerMetricsSeparate(t *testing.T) {
	registry := NewMetricsRegistry()

	c := newStubContainer("separate")
	require.NoError(t, c.registerMetrics(registry, true))

	registry.CoreMetrics().RecordTransfer("separate", DirectionDequeued, 1)
	c.push(1)

	names := gatheredNames(t, registry)
	assert.True(t, names["fixedcap_transfer_items_total"])
	assert.True(t, names["fixedcap_stub_writes_total"])
}

func TestMetricsIntegration_Unregistration(t *testing.T) {
	registry := NewMetricsRegistry()

	c := newStubContainer("gone")
	require.NoError(t, c.registerMetrics(registry, true))
	c.push(1)

	assert.True(t, gatheredNames(t, registry)["fixedcap_stub_writes_total"])
	assert.True(t, registry.Unregister("gone", "writes_total"))

	names := gatheredNames(t, registry)
	assert.False(t, names["fixedcap_stub_writes_total"])
	assert.True(t, names["fixedcap_stub_size"])
}
