// Package metrics exports PRTG request counts and latencies to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PromObs implements prtgapi.Observer.
type PromObs struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	edits    prometheus.Counter
}

// NewPromObs registers the collectors with reg, or the default registerer
// when reg is nil.
func NewPromObs(reg prometheus.Registerer) *PromObs {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prtgctl_requests_total",
		Help: "PRTG API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prtgctl_request_duration_seconds",
		Help:    "Latency of PRTG API requests.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{"endpoint"})
	edits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "prtgctl_edit_groups_total",
		Help: "Edit requests applied to the server.",
	})

	reg.MustRegister(requests, latency, edits)

	return &PromObs{requests: requests, latency: latency, edits: edits}
}

func (p *PromObs) ObserveRequest(endpoint string, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.requests.WithLabelValues(endpoint, outcome).Inc()
	p.latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if endpoint == "editsettings" && err == nil {
		p.edits.Inc()
	}
}

// Handler serves the metrics of gatherer, or the default gatherer when nil.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
