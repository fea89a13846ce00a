// Package metrics defines all custom Prometheus metrics for the staff
// service. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staff"

// RegistrationsTotal counts successfully registered staff members.
// Label:
//   - role: the registered role (ADMIN, CHEF, WAITER)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of staff members successfully registered, by role.",
	},
	[]string{"role"},
)

// ValidationRejectionsTotal counts registration payloads rejected by the
// business rules.
// Label:
//   - reason: "incomplete_request", "insufficient_experience",
//     "age_out_of_range", or "invalid_phone_number"
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of registration requests rejected by validation, by reason.",
	},
	[]string{"reason"},
)

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

// TokenRevocationsTotal counts tokens revoked via logout.
var TokenRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_revocations_total",
		Help:      "Total number of session tokens revoked before expiry.",
	},
)

// AuditEventsTotal counts staff lifecycle events written to the audit trail.
// Label:
//   - action: "registered", "updated", or "deleted"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of staff lifecycle events recorded, by action.",
	},
	[]string{"action"},
)
