// Package metrics defines all custom Prometheus metrics for the entity API.
// It is the single source of truth for metric names, labels, and help strings.
// Metrics are registered with the default registry via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "entity"

// MutationsTotal counts entity mutations that completed successfully.
// Labels:
//   - entity: "client", "user", "company"
//   - operation: "create", "update", "replace"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful entity mutations.",
	},
	[]string{"entity", "operation"},
)

// MutationErrorsTotal counts rejected or failed mutations.
// Labels:
//   - entity: "client", "user", "company"
//   - reason: "malformed", "not_found", "conflict", "noop", "internal"
var MutationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutation_errors_total",
		Help:      "Total number of entity mutations rejected or failed, by reason.",
	},
	[]string{"entity", "reason"},
)

// IdempotentReplaysTotal counts client creations answered from a previously
// recorded Idempotency-Key without writing a new row.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of client creations replayed via Idempotency-Key.",
	},
)
