package ports

import (
	"context"
	"time"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID     string
	Name       string
	Role       string
	Department string
}

// ApplyLeaveInput carries a new leave request.
type ApplyLeaveInput struct {
	Actor  Actor
	From   time.Time
	To     time.Time
	Reason string
}

// ReviewLeaveInput moves a pending request to its next status.
type ReviewLeaveInput struct {
	Actor  Actor
	ID     string
	Status domain.LeaveStatus
	Note   string
}

// LeaveService defines use-case operations for leave requests.
type LeaveService interface {
	Apply(ctx context.Context, in ApplyLeaveInput) (*domain.LeaveRequest, error)
	List(ctx context.Context, actor Actor, status domain.LeaveStatus) ([]domain.LeaveRequest, error)
	Review(ctx context.Context, in ReviewLeaveInput) (*domain.LeaveRequest, error)
}

// Dashboard is the role-specific overview. Student fields and staff fields
// are mutually exclusive.
type Dashboard struct {
	Role          string
	Month         string
	Attendance    *domain.AttendanceSummary
	Leaves        []domain.LeaveRequest
	StudentCount  int
	PendingLeaves int64
}

// DashboardService assembles dashboards.
type DashboardService interface {
	Get(ctx context.Context, actor Actor) (*Dashboard, error)
}
