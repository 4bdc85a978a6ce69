package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type DashboardService struct {
	attendance ports.AttendanceService
	roster     ports.RosterService
	leaves     ports.LeaveService
	leaveRepo  ports.LeaveRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewDashboardService(
	attendance ports.AttendanceService,
	roster ports.RosterService,
	leaves ports.LeaveService,
	leaveRepo ports.LeaveRepository,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		attendance: attendance,
		roster:     roster,
		leaves:     leaves,
		leaveRepo:  leaveRepo,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Get builds the caller's dashboard. The two halves of each dashboard are
// loaded in parallel.
func (s *DashboardService) Get(ctx context.Context, actor ports.Actor) (*ports.Dashboard, error) {
	now := s.now()
	d := &ports.Dashboard{Role: actor.Role, Month: now.Format("2006-01")}

	g, gctx := errgroup.WithContext(ctx)
	if domain.IsStaff(actor.Role) {
		g.Go(func() error {
			n, err := s.roster.CountDepartment(gctx, actor.Department)
			d.StudentCount = n
			return err
		})
		g.Go(func() error {
			n, err := s.leaveRepo.CountByStatus(gctx, actor.Department, domain.LeavePending)
			d.PendingLeaves = n
			return err
		})
	} else {
		g.Go(func() error {
			sum, err := s.attendance.Summary(gctx, ports.SummaryInput{
				UserID: actor.UserID,
				Range:  domain.MonthRange(now.Year(), now.Month(), time.UTC),
			})
			d.Attendance = sum
			return err
		})
		g.Go(func() error {
			leaves, err := s.leaves.List(gctx, actor, "")
			d.Leaves = leaves
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("user_id", actor.UserID).Str("role", actor.Role).Msg("dashboard load failed")
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return d, nil
}
