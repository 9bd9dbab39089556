package metrics

import (
	"sort"
	"strings"

	dto "github.com/prometheus/client_model/go"
)

// Sample is one flattened metric value for display
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers the registry and flattens counters, gauges and histogram
// sums into display samples. Zero-valued series are omitted.
func Snapshot() ([]Sample, error) {
	families, err := Registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			value, ok := valueOf(mf.GetType(), m)
			if !ok || value == 0 {
				continue
			}
			samples = append(samples, Sample{
				Name:   mf.GetName(),
				Labels: formatLabels(m.GetLabel()),
				Value:  value,
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}

func valueOf(t dto.MetricType, m *dto.Metric) (float64, bool) {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue(), true
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue(), true
	case dto.MetricType_HISTOGRAM:
		// Observation count is more useful than the raw sum on a small CLI run
		return float64(m.GetHistogram().GetSampleCount()), true
	default:
		return 0, false
	}
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
