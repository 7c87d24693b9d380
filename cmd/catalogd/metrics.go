package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the catalog server's collectors. Each server owns its
// registry so tests can build several.
type Metrics struct {
	Registry *prometheus.Registry

	// Requests counts served requests.
	// Labels:
	//   - route: chi route pattern
	//   - code: HTTP status code
	Requests *prometheus.CounterVec

	// Reloads counts catalog file loads.
	// Labels:
	//   - outcome: "success", "invalid", "read_error"
	Reloads *prometheus.CounterVec

	// Songs is the number of songs in the published catalog
	Songs prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogd_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"route", "code"},
		),
		Reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalogd_catalog_reloads_total",
				Help: "Total number of catalog file loads by outcome",
			},
			[]string{"outcome"},
		),
		Songs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "catalogd_catalog_songs",
				Help: "Number of songs in the published catalog",
			},
		),
	}
}
