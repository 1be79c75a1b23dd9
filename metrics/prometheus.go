package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusProvider backs the Provider interface with real
// github.com/prometheus/client_golang collectors, registered lazily on a
// caller-supplied prometheus.Registerer. Unlike BasicProvider (in-memory,
// snapshot-only), instruments created here are scrapeable by a Prometheus
// server the moment they're registered.
type PrometheusProvider struct {
	reg prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	updowns    map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPrometheusProvider constructs a Provider that registers its
// instruments on reg. Passing prometheus.DefaultRegisterer is typical.
func NewPrometheusProvider(reg prometheus.Registerer) *PrometheusProvider {
	return &PrometheusProvider{
		reg:        reg,
		counters:   make(map[string]*prometheus.CounterVec),
		updowns:    make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func labelNames(attrs map[string]string) ([]string, prometheus.Labels) {
	if len(attrs) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(attrs))
	labels := make(prometheus.Labels, len(attrs))
	for k, v := range attrs {
		names = append(names, k)
		labels[k] = v
	}
	return names, labels
}

// Counter returns a monotonic counter instrument, registering a new
// CounterVec for name on first use.
func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	cfg := applyOptions(opts)
	names, labels := labelNames(cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	cv, ok := p.counters[name]
	if !ok {
		cv = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: cfg.Description,
		}, names)
		p.reg.MustRegister(cv)
		p.counters[name] = cv
	}
	return prometheusCounter{c: cv.With(labels)}
}

// UpDownCounter returns an up/down counter instrument, registering a new
// GaugeVec for name on first use.
func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	cfg := applyOptions(opts)
	names, labels := labelNames(cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	gv, ok := p.updowns[name]
	if !ok {
		gv = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: name,
			Help: cfg.Description,
		}, names)
		p.reg.MustRegister(gv)
		p.updowns[name] = gv
	}
	return prometheusUpDownCounter{g: gv.With(labels)}
}

// Histogram returns a histogram instrument, registering a new HistogramVec
// for name on first use.
func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	cfg := applyOptions(opts)
	names, labels := labelNames(cfg.Attributes)

	p.mu.Lock()
	defer p.mu.Unlock()
	hv, ok := p.histograms[name]
	if !ok {
		hv = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: name,
			Help: cfg.Description,
		}, names)
		p.reg.MustRegister(hv)
		p.histograms[name] = hv
	}
	return prometheusHistogram{h: hv.With(labels)}
}

type prometheusCounter struct{ c prometheus.Counter }

func (c prometheusCounter) Add(n int64) { c.c.Add(float64(n)) }

type prometheusUpDownCounter struct{ g prometheus.Gauge }

func (g prometheusUpDownCounter) Add(n int64) { g.g.Add(float64(n)) }

type prometheusHistogram struct{ h prometheus.Observer }

func (h prometheusHistogram) Record(v float64) { h.h.Observe(v) }
