package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PayrollLinesGenerated counts computed payroll lines by outcome.
	PayrollLinesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance_engine",
		Subsystem: "payroll",
		Name:      "lines_generated_total",
		Help:      "Payroll lines produced by batch generation, by outcome.",
	}, []string{"outcome"})

	// BatchTransitions counts payroll batch state transitions.
	BatchTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance_engine",
		Subsystem: "payroll",
		Name:      "batch_transitions_total",
		Help:      "Payroll batch lifecycle transitions, by target state.",
	}, []string{"to"})

	// DaysResolved counts resolved attendance days by status.
	DaysResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance_engine",
		Subsystem: "attendance",
		Name:      "days_resolved_total",
		Help:      "Attendance days resolved by the aggregator, by status.",
	}, []string{"status"})

	// QuotaRetries counts leave quota updates retried after lock contention.
	QuotaRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance_engine",
		Subsystem: "leave",
		Name:      "quota_update_retries_total",
		Help:      "Leave quota ledger updates retried after serialization failures.",
	})
)
