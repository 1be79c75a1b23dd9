package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestPrometheusProvider_CounterAccumulates(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg)

	c := p.Counter("futures_completed_total")
	c.Add(2)
	c.Add(3)

	metricFamilies, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var found *dto.MetricFamily
	for _, mf := range metricFamilies {
		if mf.GetName() == "futures_completed_total" {
			found = mf
		}
	}
	if found == nil {
		t.Fatalf("expected futures_completed_total to be registered")
	}
	if got := found.Metric[0].Counter.GetValue(); got != 5 {
		t.Fatalf("counter value = %v; want 5", got)
	}
}

func TestPrometheusProvider_ReusesInstrumentForSameName(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg)

	p.Counter("x").Add(1)
	p.Counter("x").Add(1)

	metricFamilies, _ := reg.Gather()
	count := 0
	for _, mf := range metricFamilies {
		if mf.GetName() == "x" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one registered family named x, got %d", count)
	}
}

func TestPrometheusProvider_Histogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheusProvider(reg)

	h := p.Histogram("latency_seconds")
	h.Record(0.5)

	metricFamilies, _ := reg.Gather()
	for _, mf := range metricFamilies {
		if mf.GetName() == "latency_seconds" {
			if got := mf.Metric[0].Histogram.GetSampleCount(); got != 1 {
				t.Fatalf("sample count = %d; want 1", got)
			}
			return
		}
	}
	t.Fatalf("expected latency_seconds to be registered")
}
