package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrisim",
		Name:      "http_requests_total",
		Help:      "API requests by endpoint.",
	}, []string{"endpoint"})

	yieldsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "agrisim",
		Name:      "yield_computations_total",
		Help:      "Single-shot yield computations served.",
	})

	simulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "agrisim",
		Name:      "simulations_total",
		Help:      "Multi-day farm simulations run, by crop.",
	}, []string{"crop"})
)

func observeRequest(endpoint string) {
	requestsTotal.WithLabelValues(endpoint).Inc()
}

func observeYield() {
	yieldsTotal.Inc()
}

func observeSimulation(crop string) {
	simulationsTotal.WithLabelValues(crop).Inc()
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
