package domain

import (
	"errors"
	"time"
)

// AttendanceStatus is the outcome recorded for one student in one session.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusLeave   AttendanceStatus = "leave"
)

var (
	ErrInvalidStatus       = errors.New("invalid attendance status")
	ErrInvalidRange        = errors.New("invalid date range")
	ErrDuplicateSubmission = errors.New("attendance already submitted for this key")
	ErrSubjectRequired     = errors.New("subject is required")
	ErrInvalidExportType   = errors.New("export type must be one of: basic, monthly, custom, subject")
)

// Valid reports whether s is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}

// AttendanceLog is one student's status for one class session.
type AttendanceLog struct {
	ID        string           `json:"id" bson:"_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	UserName  string           `json:"user_name" bson:"user_name"`
	Date      time.Time        `json:"date" bson:"date"`
	Status    AttendanceStatus `json:"status" bson:"status"`
	Subject   string           `json:"subject" bson:"subject"`
	Notes     string           `json:"notes" bson:"notes"`
	ClockIn   string           `json:"clock_in,omitempty" bson:"clock_in,omitempty"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// AttendanceSummary holds the counts derived from a set of logs.
type AttendanceSummary struct {
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	Late       int    `json:"late"`
	Leave      int    `json:"leave"`
	Percentage string `json:"percentage"`
}

// DateRange is an inclusive calendar range. End covers the whole of its day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate rejects ranges with a zero bound or an end before the start.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() || r.End.Before(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Bounds returns [from, until) where until is midnight after End.
func (r DateRange) Bounds() (from, until time.Time) {
	from = StartOfDay(r.Start)
	until = StartOfDay(r.End).AddDate(0, 0, 1)
	return from, until
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the calendar bounds of the given month.
func MonthRange(year int, month time.Month, loc *time.Location) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}
