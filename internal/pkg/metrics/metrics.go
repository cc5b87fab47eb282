// Package metrics defines the custom Prometheus collectors for the portfolio
// API. It is the single source of truth for metric names, labels and help
// strings.
//
// Collectors are created unregistered; call MustRegister once at startup with
// the registry that /metrics serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts registered.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests turned away by the bearer middleware.
// Label:
//   - reason: "missing_token", "invalid_scheme" or "invalid_token"
var AuthRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of protected requests rejected before reaching a handler.",
	},
	[]string{"reason"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostMutationsTotal counts successful post mutations.
// Label:
//   - action: "created", "updated" or "deleted"
var PostMutationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of successful post mutations, by action.",
	},
	[]string{"action"},
)

// OwnershipDeniedTotal counts update/delete attempts on another author's post.
var OwnershipDeniedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denied_total",
		Help:      "Total number of post mutations rejected because the caller is not the author.",
	},
)

// IdempotentReplaysTotal counts create requests answered from a stored key.
var IdempotentReplaysTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of post create requests replayed from an idempotency key.",
	},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by outcome.
// Label:
//   - result: "written", "failed" or "dropped"
var AuditEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of post audit events, by outcome.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MustRegister registers every collector in this package with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		UsersRegisteredTotal,
		LoginAttemptsTotal,
		AuthRejectionsTotal,
		PostMutationsTotal,
		OwnershipDeniedTotal,
		IdempotentReplaysTotal,
		AuditEventsTotal,
		AuditQueueDepth,
	)
}
