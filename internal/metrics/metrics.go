// Package metrics defines the prometheus collectors shared across the
// storage and session layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// User store metrics, recorded by the instrumented store decorator.
var (
	// StoreOpsTotal tracks user store operations by operation and status.
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_store_operations_total",
			Help: "Total user store operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// StoreOpDuration tracks user store operation latency in seconds.
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "user_store_operation_duration_seconds",
			Help:    "User store operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Session store metrics.
var (
	// SessionOpsTotal tracks session store operations by operation and status.
	SessionOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_store_operations_total",
			Help: "Total session store operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// CircuitBreakerStateChanges tracks breaker transitions on the redis path.
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks the current breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
