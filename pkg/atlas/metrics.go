package atlas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeRequestError   = "request_error"
	outcomeServerError    = "server_error"
	outcomeTransportError = "transport_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas_client",
			Name:      "requests_total",
			Help:      "Atlas HTTP requests by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	cacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas_client",
			Name:      "cache_hits_total",
			Help:      "Endpoint results served from a request's cache.",
		},
		[]string{"endpoint"},
	)
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case IsRequestError(err):
		return outcomeRequestError
	case IsServerError(err):
		return outcomeServerError
	default:
		return outcomeTransportError
	}
}
