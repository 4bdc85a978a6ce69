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

type RosterService struct {
	store             ports.RosterStore
	cache             ports.RosterCache
	defaultDepartment string
	log               zerolog.Logger
}

// NewRosterService returns a RosterService. cache may be nil.
func NewRosterService(store ports.RosterStore, cache ports.RosterCache, defaultDepartment string, log zerolog.Logger) *RosterService {
	return &RosterService{
		store:             store,
		cache:             cache,
		defaultDepartment: defaultDepartment,
		log:               log,
	}
}

// List returns the students of a cohort. The cohort collection is read first;
// when that read fails the flat collection is filtered instead.
func (s *RosterService) List(ctx context.Context, filter ports.RosterFilter) ([]domain.User, error) {
	cohort := filter.Cohort.WithDefaults()
	key := rosterCacheKey(filter.Department, cohort)

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("roster cache read failed")
		case ok:
			metrics.RosterCacheTotal.WithLabelValues("hit").Inc()
			return searchStudents(cached, filter.Search), nil
		}
		metrics.RosterCacheTotal.WithLabelValues("miss").Inc()
	}

	students, err := s.load(ctx, filter.Department, cohort)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, students); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("roster cache write failed")
		}
	}
	return searchStudents(students, filter.Search), nil
}

func (s *RosterService) load(ctx context.Context, department string, cohort domain.Cohort) ([]domain.User, error) {
	fromCohort, err := s.store.ListCohortStudents(ctx, cohort)
	if err == nil {
		out := make([]domain.User, 0, len(fromCohort))
		for _, u := range fromCohort {
			if u.Role == domain.RoleStudent && inDepartment(u, department) {
				out = append(out, u)
			}
		}
		return out, nil
	}

	s.log.Warn().Err(err).Str("cohort", cohort.Key()).Msg("cohort collection unavailable, filtering flat collection")

	all, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return filterCohort(all, department, cohort), nil
}

// Add validates and creates a new student in both collections.
func (s *RosterService) Add(ctx context.Context, in ports.StudentInput) (*domain.User, error) {
	in = trimInput(in)
	if err := domain.ValidateStudent(in.Name, in.Email, in.RollNumber); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("add student: check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	exists, err = s.store.ExistsByRollNumber(ctx, in.RollNumber)
	if err != nil {
		return nil, fmt.Errorf("add student: check roll number: %w", err)
	}
	if exists {
		return nil, domain.ErrRollNumberExists
	}

	student := s.newStudent(in, time.Now().UTC())

	if err := s.store.CreateUser(ctx, student); err != nil {
		s.log.Error().Err(err).Str("roll_number", student.RollNumber).Msg("failed to create student")
		return nil, fmt.Errorf("add student: %w", err)
	}
	if err := s.store.CreateCohortRecord(ctx, student); err != nil {
		s.log.Error().Err(err).Str("student_id", student.ID).Msg("student created without cohort record")
		return nil, fmt.Errorf("add student: cohort record: %w", err)
	}

	s.invalidate(ctx, student.Department, student.Cohort())
	s.log.Info().Str("student_id", student.ID).Str("cohort", student.Cohort().Key()).Msg("student added")
	return student, nil
}

// Edit overwrites a student in both collections. Email and roll number
// uniqueness is not re-checked.
func (s *RosterService) Edit(ctx context.Context, actor ports.Actor, id string, in ports.StudentInput) (*domain.User, error) {
	in = trimInput(in)
	if err := domain.ValidateStudent(in.Name, in.Email, in.RollNumber); err != nil {
		return nil, err
	}

	existing, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("edit student: %w", err)
	}
	if err := authorizeStudent(actor, existing.Department); err != nil {
		return nil, err
	}
	if in.Department == "" {
		in.Department = existing.Department
	}
	if err := authorizeStudent(actor, in.Department); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = in.Name
	updated.Email = in.Email
	updated.Phone = in.Phone
	updated.Gender = in.Gender
	updated.RollNumber = in.RollNumber
	cohort := domain.Cohort{Year: in.Year, Semester: in.Semester, Division: in.Division}.WithDefaults()
	updated.Year, updated.Semester, updated.Division = cohort.Year, cohort.Semester, cohort.Division
	updated.Department = in.Department
	updated.Role = domain.RoleStudent
	updated.AccessLevel = domain.AccessBasic
	if in.IsActive != nil {
		updated.IsActive = *in.IsActive
	}

	if err := s.store.UpdateUser(ctx, &updated); err != nil {
		return nil, fmt.Errorf("edit student: %w", err)
	}

	moved := existing.Cohort() != updated.Cohort() || existing.RollNumber != updated.RollNumber
	if moved {
		if err := s.store.DeleteCohortRecord(ctx, existing); err != nil {
			s.log.Warn().Err(err).Str("student_id", id).Msg("stale cohort record not removed")
		}
	}
	if err := s.store.UpdateCohortRecord(ctx, &updated); err != nil {
		return nil, fmt.Errorf("edit student: cohort record: %w", err)
	}

	s.invalidate(ctx, existing.Department, existing.Cohort())
	if moved || existing.Department != updated.Department {
		s.invalidate(ctx, updated.Department, updated.Cohort())
	}
	return &updated, nil
}

// Delete removes a student from both collections. Attendance history is kept.
func (s *RosterService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	existing, err := s.store.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if err := authorizeStudent(actor, existing.Department); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if err := s.store.DeleteCohortRecord(ctx, existing); err != nil {
		return fmt.Errorf("delete student: cohort record: %w", err)
	}

	s.invalidate(ctx, existing.Department, existing.Cohort())
	s.log.Info().Str("student_id", id).Msg("student deleted")
	return nil
}

// CountDepartment counts the students of a department across all cohorts.
func (s *RosterService) CountDepartment(ctx context.Context, department string) (int, error) {
	all, err := s.store.ListStudents(ctx)
	if err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	n := 0
	for _, u := range all {
		if u.Role == domain.RoleStudent && inDepartment(u, department) {
			n++
		}
	}
	return n, nil
}

func (s *RosterService) newStudent(in ports.StudentInput, now time.Time) *domain.User {
	cohort := domain.Cohort{Year: in.Year, Semester: in.Semester, Division: in.Division}.WithDefaults()
	return &domain.User{
		ID:          newStudentID(in.RollNumber),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Gender:      in.Gender,
		RollNumber:  in.RollNumber,
		Year:        cohort.Year,
		Semester:    cohort.Semester,
		Division:    cohort.Division,
		Department:  s.department(in.Department),
		Role:        domain.RoleStudent,
		AccessLevel: domain.AccessBasic,
		IsActive:    true,
		CreatedAt:   now,
	}
}

// authorizeStudent lets staff touch students of their own department only;
// an HOD may touch any department.
func authorizeStudent(actor ports.Actor, department string) error {
	if actor.Role == domain.RoleHOD || actor.Department == department {
		return nil
	}
	return domain.ErrForbidden
}

func (s *RosterService) department(d string) string {
	if d == "" {
		return s.defaultDepartment
	}
	return d
}

// invalidate drops both the department-scoped and the unscoped cache entry.
func (s *RosterService) invalidate(ctx context.Context, department string, cohort domain.Cohort) {
	if s.cache == nil {
		return
	}
	keys := []string{rosterCacheKey("", cohort), rosterCacheKey(department, cohort)}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("roster cache invalidation failed")
	}
}

func rosterCacheKey(department string, cohort domain.Cohort) string {
	if department == "" {
		department = "*"
	}
	return department + ":" + cohort.Key()
}

func newStudentID(rollNumber string) string {
	return "student_" + rollNumber + "_" + uuid.NewString()
}

func trimInput(in ports.StudentInput) ports.StudentInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Gender = strings.TrimSpace(in.Gender)
	in.RollNumber = strings.TrimSpace(in.RollNumber)
	in.Year = strings.TrimSpace(in.Year)
	in.Semester = strings.TrimSpace(in.Semester)
	in.Division = strings.TrimSpace(in.Division)
	in.Department = strings.TrimSpace(in.Department)
	return in
}

func inDepartment(u domain.User, department string) bool {
	return department == "" || u.Department == department
}

func filterCohort(users []domain.User, department string, cohort domain.Cohort) []domain.User {
	out := make([]domain.User, 0)
	for _, u := range users {
		if u.Role != domain.RoleStudent || !inDepartment(u, department) {
			continue
		}
		if u.Cohort() == cohort {
			out = append(out, u)
		}
	}
	return out
}

func searchStudents(users []domain.User, q string) []domain.User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.RollNumber), q) {
			out = append(out, u)
		}
	}
	return out
}
