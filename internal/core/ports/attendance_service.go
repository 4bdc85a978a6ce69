package ports

import (
	"context"
	"time"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// SessionInput describes one class session being marked.
type SessionInput struct {
	Department string
	Cohort     domain.Cohort
	Subject    string
	Date       time.Time
	// PresentRolls is the free-text roll list, comma or whitespace separated.
	PresentRolls   string
	AllPresent     bool
	Note           string
	IdempotencyKey string
}

// StudentRef identifies a student in session results.
type StudentRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
}

// SessionResult is the present/absent partition of a session roster.
type SessionResult struct {
	Date     time.Time
	Subject  string
	Present  []StudentRef
	Absent   []StudentRef
	Recorded int
}

// SummaryInput selects the logs an attendance summary is computed over.
type SummaryInput struct {
	UserID  string
	Range   domain.DateRange
	Subject string
}

// AttendanceService records sessions and aggregates attendance.
type AttendanceService interface {
	Preview(ctx context.Context, in SessionInput) (*SessionResult, error)
	Submit(ctx context.Context, in SessionInput) (*SessionResult, error)
	Summary(ctx context.Context, in SummaryInput) (*domain.AttendanceSummary, error)
}
