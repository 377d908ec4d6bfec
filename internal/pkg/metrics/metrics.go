// Package metrics holds the Prometheus collectors of the leave service.
// Collectors register themselves with the default registry through promauto,
// which the /metrics endpoint serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hr_portal"

// LeaveRequestsSubmittedTotal counts accepted submissions.
// Label:
//   - leave_type: vacation, sick, personal or emergency
var LeaveRequestsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_requests_submitted_total",
		Help:      "Total number of leave requests submitted, by leave type.",
	},
	[]string{"leave_type"},
)

// LeaveDecisionsTotal counts decisions that were committed.
// Labels:
//   - status: approved or rejected
//   - role: role of the deciding actor
var LeaveDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decisions_total",
		Help:      "Total number of leave requests decided, by resulting status and approver role.",
	},
	[]string{"status", "role"},
)

// LeaveDecisionErrorsTotal counts decide attempts that failed.
// Label:
//   - reason: unauthorized, not_found, invalid_transition, balance_update_failed or internal
var LeaveDecisionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decision_errors_total",
		Help:      "Total number of failed decide attempts, by reason.",
	},
	[]string{"reason"},
)

var LeaveRepliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_replies_total",
		Help:      "Total number of replies posted, by author role.",
	},
	[]string{"role"},
)

// LeaveDaysConsumedTotal sums the days charged to balances on approval.
var LeaveDaysConsumedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_days_consumed_total",
		Help:      "Total number of leave days charged to balances by approvals.",
	},
)

// DecideDuration measures the decide unit of work including the balance update.
var DecideDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "leave_decide_duration_seconds",
		Help:      "Duration of the decide transaction.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// DirectoryLookupsTotal counts department lookups done by the visibility filter.
// Label:
//   - result: ok or degraded
var DirectoryLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_lookups_total",
		Help:      "Total number of department lookups, labelled ok or degraded.",
	},
	[]string{"result"},
)

// DepartmentCacheTotal counts department cache lookups.
// Label:
//   - result: hit or miss
var DepartmentCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "department_cache_total",
		Help:      "Total number of department cache lookups, labelled hit or miss.",
	},
	[]string{"result"},
)

// SSESubscribers tracks the number of open event streams.
var SSESubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sse_subscribers",
		Help:      "Current number of open server-sent event streams.",
	},
)

// LeaveRequestsByStatus is refreshed periodically from storage.
// Label:
//   - status: pending, approved or rejected
var LeaveRequestsByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "leave_requests",
		Help:      "Current number of leave requests, by status.",
	},
	[]string{"status"},
)
