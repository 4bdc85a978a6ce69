// Package metrics defines the custom Prometheus metrics of the attendance
// service. Metrics are registered with the default registry on package init
// through promauto and exposed by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// ── Attendance metrics ────────────────────────────────────────────────────────

// AttendanceRecordsTotal counts attendance logs written.
// Label:
//   - status: "present" or "absent"
var AttendanceRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_total",
		Help:      "Total number of attendance logs written, by status.",
	},
	[]string{"status"},
)

// AttendanceWriteErrorsTotal counts attendance logs that failed to persist.
var AttendanceWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_write_errors_total",
		Help:      "Total number of attendance log writes that failed.",
	},
)

// BatchWriteDuration measures a whole concurrent batch, from first write to last.
// Label:
//   - batch: "attendance_submit" or "student_import"
var BatchWriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "batch_write_duration_seconds",
		Help:      "Duration of concurrent write batches.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"batch"},
)

// ── Roster metrics ────────────────────────────────────────────────────────────

// RosterCacheTotal counts roster cache lookups.
// Label:
//   - result: "hit" or "miss"
var RosterCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roster_cache_total",
		Help:      "Total number of roster cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// StudentsImportedTotal counts spreadsheet rows by outcome.
// Label:
//   - result: "imported", "skipped" or "failed"
var StudentsImportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "students_imported_total",
		Help:      "Total number of spreadsheet import rows, by result.",
	},
	[]string{"result"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ExportsTotal counts rendered exports.
// Label:
//   - type: "basic", "monthly", "custom" or "subject"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of exports rendered, by type.",
	},
	[]string{"type"},
)

// ExportRowFallbacksTotal counts export rows zeroed because the student's
// attendance could not be read.
var ExportRowFallbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_row_fallbacks_total",
		Help:      "Total number of export rows written with zeroed statistics.",
	},
)

// ── Leave metrics ─────────────────────────────────────────────────────────────

// LeaveDecisionsTotal counts leave requests moved out of pending.
// Label:
//   - status: "approved", "rejected" or "cancelled"
var LeaveDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decisions_total",
		Help:      "Total number of leave requests reviewed, by resulting status.",
	},
	[]string{"status"},
)
