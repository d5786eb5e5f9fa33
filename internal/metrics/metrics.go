// Package metrics exposes Prometheus metrics for the wallet core.
// Labels stay low-cardinality: outcomes and states, never ids or hashes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionTransitionTotal counts session state transitions by target state.
	SessionTransitionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aw_session_transition_total",
		Help: "Total number of session state transitions, by target state.",
	}, []string{"to"})

	// UserOpSubmitTotal counts user-operation submissions by outcome
	// (accepted, rejected, invalid_input, concurrent).
	UserOpSubmitTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aw_userop_submit_total",
		Help: "Total number of user operation submissions, by outcome.",
	}, []string{"outcome"})

	// UserOpConfirmSeconds observes the wall time between submission and
	// the mined transaction.
	UserOpConfirmSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aw_userop_confirm_seconds",
		Help:    "Seconds from bundler acceptance to mined transaction.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// RelayIntentTotal counts embedded-app intents by outcome
	// (confirmed, rejected, dropped_origin, dropped_malformed, rate_limited).
	RelayIntentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aw_relay_intent_total",
		Help: "Total number of relayed transaction intents, by outcome.",
	}, []string{"outcome"})
)
