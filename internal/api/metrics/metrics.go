// Package metrics defines all custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// PasswordChangesTotal counts successful password changes.
var PasswordChangesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes.",
	},
)

// TokenValidationsTotal counts per-request token validations.
// Label:
//   - result: "ok", "invalid" (bad signature/expired/malformed), or "revoked"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of session token validations, by result.",
	},
	[]string{"result"},
)

// ── Revocation metrics ────────────────────────────────────────────────────────

// TokensRevokedTotal counts revocation entries written to the denylist.
// Label:
//   - reason: "logout" or "password_change"
var TokensRevokedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of session tokens revoked, by reason.",
	},
	[]string{"reason"},
)

// RevocationDegradedTotal counts revocation store operations that failed open
// because the backend was unavailable or timed out.
// Label:
//   - op: "revoke" or "is_revoked"
var RevocationDegradedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revocation_degraded_total",
		Help:      "Total number of revocation store operations that failed open.",
	},
	[]string{"op"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of entries waiting in each audit worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEntriesTotal counts audit trail writes.
// Label:
//   - result: "ok" or "error"
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit trail writes, by result.",
	},
	[]string{"result"},
)
