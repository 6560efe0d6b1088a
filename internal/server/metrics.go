package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	outcomeResult   = "result"
	outcomeNoResult = "no_result"
	outcomeRejected = "rejected"
)

type metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
}

// newMetrics uses a private registry so several handlers can coexist in one
// process.
func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	conversions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taxcalc",
		Name:      "conversions_total",
		Help:      "Conversion requests by direction and outcome.",
	}, []string{"direction", "outcome"})

	registry.MustRegister(
		conversions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &metrics{registry: registry, conversions: conversions}
}

func (m *metrics) observe(direction, outcome string) {
	m.conversions.WithLabelValues(direction, outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
