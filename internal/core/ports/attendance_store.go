package ports

import (
	"context"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// AttendanceStore persists attendance logs.
type AttendanceStore interface {
	Create(ctx context.Context, log *domain.AttendanceLog) error
	// FindByUserAndRange returns the user's logs dated inside r, both ends inclusive.
	FindByUserAndRange(ctx context.Context, userID string, r domain.DateRange) ([]domain.AttendanceLog, error)
}

// SubmissionGuard remembers idempotency keys of attendance submissions.
type SubmissionGuard interface {
	// Claim records key and reports whether this is its first use.
	Claim(ctx context.Context, key string) (bool, error)
	// Release forgets key so it can be claimed again.
	Release(ctx context.Context, key string) error
}

// BatchWriter runs a set of independent writes concurrently and waits for all
// of them. It returns the first error; writes that already succeeded stay.
type BatchWriter interface {
	Run(ctx context.Context, name string, tasks []func(context.Context) error) error
}
