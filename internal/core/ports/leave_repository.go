package ports

import (
	"context"
	"time"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// LeaveFilter narrows a leave listing. Empty fields are not applied.
type LeaveFilter struct {
	UserID     string
	Department string
	Status     domain.LeaveStatus
}

// LeaveReview is the state change applied when a request leaves "pending".
type LeaveReview struct {
	From       domain.LeaveStatus
	To         domain.LeaveStatus
	ReviewerID string
	Note       string
	At         time.Time
}

// LeaveRepository defines persistence operations for leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, l *domain.LeaveRequest) error
	FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)
	// UpdateStatus applies review only if the stored status still equals review.From.
	// It returns domain.ErrInvalidTransition when the request moved on meanwhile.
	UpdateStatus(ctx context.Context, id string, review LeaveReview) error
	CountByStatus(ctx context.Context, department string, status domain.LeaveStatus) (int64, error)
}
