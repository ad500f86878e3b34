// Package metrics defines the custom Prometheus metrics for the booking
// client. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register themselves with the default registry at package init;
// expose them with promhttp or the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking_client"

// RequestsTotal counts gateway requests by logical operation and outcome.
// Labels:
//   - operation: the logical API operation (e.g. "login", "list_services")
//   - status: the HTTP status code, or "transport_error" when no response
//     was received
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of gateway requests, by operation and status.",
	},
	[]string{"operation", "status"},
)

// RequestDuration measures the round-trip time of a single gateway request.
// Label:
//   - operation: the logical API operation
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of gateway requests from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SessionTeardownsTotal counts forced session teardowns triggered by a 401
// response, regardless of which operation received it.
var SessionTeardownsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of 401-triggered credential teardowns.",
	},
)
