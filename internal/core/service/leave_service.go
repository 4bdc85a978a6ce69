package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/api/metrics"
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type LeaveService struct {
	repo ports.LeaveRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewLeaveService(repo ports.LeaveRepository, log zerolog.Logger) *LeaveService {
	return &LeaveService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Apply files a pending leave request for the calling student.
func (s *LeaveService) Apply(ctx context.Context, in ports.ApplyLeaveInput) (*domain.LeaveRequest, error) {
	if in.Actor.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	if err := (domain.DateRange{Start: in.From, End: in.To}).Validate(); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	leave := &domain.LeaveRequest{
		ID:         uuid.NewString(),
		UserID:     in.Actor.UserID,
		UserName:   in.Actor.Name,
		Department: in.Actor.Department,
		From:       domain.StartOfDay(in.From),
		To:         domain.StartOfDay(in.To),
		Reason:     reason,
		Status:     domain.LeavePending,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, leave); err != nil {
		return nil, fmt.Errorf("apply leave: %w", err)
	}

	s.log.Info().Str("leave_id", leave.ID).Str("user_id", leave.UserID).Msg("leave requested")
	return leave, nil
}

// List returns the caller's own requests for students, the department's
// requests for teachers and every department's for an HOD. An empty status
// lists all.
func (s *LeaveService) List(ctx context.Context, actor ports.Actor, status domain.LeaveStatus) ([]domain.LeaveRequest, error) {
	filter := ports.LeaveFilter{Status: status}
	switch {
	case actor.Role == domain.RoleHOD:
	case domain.IsStaff(actor.Role):
		filter.Department = actor.Department
	default:
		filter.UserID = actor.UserID
	}
	leaves, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return leaves, nil
}

// Review moves a pending request on. Teachers approve or reject requests of
// their department, an HOD those of any department; a student may only
// cancel their own.
func (s *LeaveService) Review(ctx context.Context, in ports.ReviewLeaveInput) (*domain.LeaveRequest, error) {
	leave, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := authorizeReview(in.Actor, leave, in.Status); err != nil {
		return nil, err
	}
	if !leave.Status.CanTransitionTo(in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	at := s.now()
	review := ports.LeaveReview{
		From:       leave.Status,
		To:         in.Status,
		ReviewerID: in.Actor.UserID,
		Note:       strings.TrimSpace(in.Note),
		At:         at,
	}
	if err := s.repo.UpdateStatus(ctx, leave.ID, review); err != nil {
		return nil, err
	}

	leave.Status = in.Status
	leave.ReviewerID = review.ReviewerID
	leave.ReviewNote = review.Note
	leave.ReviewedAt = &at

	metrics.LeaveDecisionsTotal.WithLabelValues(string(in.Status)).Inc()
	s.log.Info().
		Str("leave_id", leave.ID).
		Str("status", string(in.Status)).
		Str("reviewer_id", review.ReviewerID).
		Msg("leave reviewed")
	return leave, nil
}

func authorizeReview(actor ports.Actor, leave *domain.LeaveRequest, next domain.LeaveStatus) error {
	if next == domain.LeaveCancelled {
		if actor.UserID != leave.UserID {
			return domain.ErrForbidden
		}
		return nil
	}
	if !domain.IsStaff(actor.Role) {
		return domain.ErrForbidden
	}
	if actor.Role != domain.RoleHOD && actor.Department != "" && leave.Department != "" && actor.Department != leave.Department {
		return domain.ErrForbidden
	}
	return nil
}
