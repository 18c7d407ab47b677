package metric

import (
	"context"
	"fmt"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/c360/fixedcap/errors"
)

// Scrape fetches url and parses the Prometheus text exposition it returns.
func Scrape(ctx context.Context, url string) (map[string]*dto.MetricFamily, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapInvalid(err, "metric", "Scrape", "create http request")
	}
	// text format, not OpenMetrics, so TextParser can read it
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.WrapTransient(err, "metric", "Scrape", "fetch metrics")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WrapTransient(
			fmt.Errorf("unexpected status code: %d", resp.StatusCode),
			"metric", "Scrape", "check http status")
	}

	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(resp.Body)
	if err != nil {
		return nil, errors.WrapTransient(err, "metric", "Scrape", "parse prometheus text format")
	}
	return families, nil
}

// LabeledValues returns the value of every counter or gauge sample in
// families that carries label=value, keyed by family name.
func LabeledValues(families map[string]*dto.MetricFamily, label, value string) map[string]float64 {
	out := make(map[string]float64)
	for name, family := range families {
		for _, m := range family.GetMetric() {
			if !hasLabel(m, label, value) {
				continue
			}
			switch family.GetType() {
			case dto.MetricType_COUNTER:
				out[name] += m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				out[name] += m.GetGauge().GetValue()
			}
		}
	}
	return out
}

func hasLabel(m *dto.Metric, name, value string) bool {
	for _, l := range m.GetLabel() {
		if l.GetName() == name && l.GetValue() == value {
			return true
		}
	}
	return false
}
