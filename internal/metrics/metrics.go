// Package metrics exposes Prometheus instrumentation for the HTTP surface and
// asset admission.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "content_studio"

// Severity labels for slow requests.
const (
	SeverityPerformance = "performance"
	SeverityAlert       = "alert"
)

var (
	// RequestDuration tracks HTTP latency.
	// Labels: method, route, status
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "route", "status"},
	)

	// SlowRequests counts requests that crossed a monitoring threshold.
	// Labels: route, severity (performance|alert)
	SlowRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "slow_requests_total",
			Help:      "Requests slower than the configured performance or alert threshold",
		},
		[]string{"route", "severity"},
	)

	// AssetValidations counts upload admission outcomes.
	// Labels: asset_type, result (accepted|rejected)
	AssetValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assets",
			Name:      "validations_total",
			Help:      "Asset validation outcomes",
		},
		[]string{"asset_type", "result"},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, route string, status int, duration time.Duration) {
	RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveSlowRequest records a request that crossed a threshold.
func ObserveSlowRequest(route, severity string) {
	SlowRequests.WithLabelValues(route, severity).Inc()
}

// ObserveAssetValidation records an asset admission decision.
func ObserveAssetValidation(assetType string, accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	AssetValidations.WithLabelValues(assetType, result).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
