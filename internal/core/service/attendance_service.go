package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/api/metrics"
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type AttendanceService struct {
	roster ports.RosterStore
	store  ports.AttendanceStore
	batch  ports.BatchWriter
	guard  ports.SubmissionGuard
	log    zerolog.Logger
	now    func() time.Time
}

// NewAttendanceService returns an AttendanceService. guard may be nil, in which
// case idempotency keys are ignored and every submission appends.
func NewAttendanceService(
	roster ports.RosterStore,
	store ports.AttendanceStore,
	batch ports.BatchWriter,
	guard ports.SubmissionGuard,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		roster: roster,
		store:  store,
		batch:  batch,
		guard:  guard,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Preview partitions the session roster without writing anything.
func (s *AttendanceService) Preview(ctx context.Context, in ports.SessionInput) (*ports.SessionResult, error) {
	roster, err := s.sessionRoster(ctx, in.Department, in.Cohort.WithDefaults())
	if err != nil {
		return nil, err
	}
	present, absent := s.partition(roster, in)
	return &ports.SessionResult{
		Date:    s.sessionDate(in.Date),
		Subject: in.Subject,
		Present: refs(present),
		Absent:  refs(absent),
	}, nil
}

// Submit writes one log per roster student: present when the student's roll
// number is in the submitted list, absent otherwise. The writes run
// concurrently and are not rolled back if some of them fail.
//
// An idempotency key is claimed once the roster is loaded and released again
// when the submission fails before any log was written, so a retry with the
// same key can still record the session.
func (s *AttendanceService) Submit(ctx context.Context, in ports.SessionInput) (*ports.SessionResult, error) {
	cohort := in.Cohort.WithDefaults()
	roster, err := s.sessionRoster(ctx, in.Department, cohort)
	if err != nil {
		return nil, err
	}

	date := s.sessionDate(in.Date)
	key, err := s.claim(ctx, in, cohort, date)
	if err != nil {
		return nil, err
	}

	present, absent := s.partition(roster, in)
	createdAt := s.now()

	var written atomic.Int32
	tasks := make([]func(context.Context) error, 0, len(roster))
	queue := func(u domain.User, status domain.AttendanceStatus) {
		entry := &domain.AttendanceLog{
			ID:        uuid.NewString(),
			UserID:    u.ID,
			UserName:  u.Name,
			Date:      date,
			Status:    status,
			Subject:   in.Subject,
			Notes:     in.Note,
			CreatedAt: createdAt,
		}
		tasks = append(tasks, func(ctx context.Context) error {
			if err := s.store.Create(ctx, entry); err != nil {
				metrics.AttendanceWriteErrorsTotal.Inc()
				return fmt.Errorf("student %s: %w", entry.UserID, err)
			}
			written.Add(1)
			metrics.AttendanceRecordsTotal.WithLabelValues(string(status)).Inc()
			return nil
		})
	}
	for _, u := range present {
		queue(u, domain.StatusPresent)
	}
	for _, u := range absent {
		queue(u, domain.StatusAbsent)
	}

	if err := s.batch.Run(ctx, "attendance_submit", tasks); err != nil {
		s.log.Error().Err(err).
			Str("cohort", cohort.Key()).
			Str("subject", in.Subject).
			Int32("written", written.Load()).
			Msg("attendance submission incomplete")
		if key != "" && written.Load() == 0 {
			s.release(ctx, key)
		}
		return nil, fmt.Errorf("submit attendance: %w", err)
	}

	s.log.Info().
		Str("cohort", cohort.Key()).
		Str("subject", in.Subject).
		Int("present", len(present)).
		Int("absent", len(absent)).
		Msg("attendance recorded")

	return &ports.SessionResult{
		Date:     date,
		Subject:  in.Subject,
		Present:  refs(present),
		Absent:   refs(absent),
		Recorded: len(tasks),
	}, nil
}

// claim reserves the session's idempotency key and returns the guard key it
// used, or "" when no key was claimed. A guard outage is logged and the
// submission goes ahead.
func (s *AttendanceService) claim(ctx context.Context, in ports.SessionInput, cohort domain.Cohort, date time.Time) (string, error) {
	if in.IdempotencyKey == "" || s.guard == nil {
		return "", nil
	}
	key := submissionKey(in, cohort, date)
	first, err := s.guard.Claim(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("submission guard unavailable, recording anyway")
		return "", nil
	}
	if !first {
		return "", domain.ErrDuplicateSubmission
	}
	return key, nil
}

func (s *AttendanceService) release(ctx context.Context, key string) {
	if err := s.guard.Release(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("release submission key")
	}
}

// submissionKey scopes a client idempotency key to one class session, so the
// same client key used for another cohort, subject or day does not collide.
func submissionKey(in ports.SessionInput, cohort domain.Cohort, date time.Time) string {
	return strings.Join([]string{
		in.Department,
		cohort.Key(),
		strings.ToLower(in.Subject),
		date.Format(time.DateOnly),
		in.IdempotencyKey,
	}, "|")
}

// Summary aggregates a student's logs over an inclusive range.
func (s *AttendanceService) Summary(ctx context.Context, in ports.SummaryInput) (*domain.AttendanceSummary, error) {
	logs, err := s.logs(ctx, in)
	if err != nil {
		return nil, err
	}
	summary := Summarize(logs)
	return &summary, nil
}

func (s *AttendanceService) logs(ctx context.Context, in ports.SummaryInput) ([]domain.AttendanceLog, error) {
	if err := in.Range.Validate(); err != nil {
		return nil, err
	}
	logs, err := s.store.FindByUserAndRange(ctx, in.UserID, in.Range)
	if err != nil {
		return nil, fmt.Errorf("attendance summary: %w", err)
	}
	return FilterSubject(logs, in.Subject), nil
}

// sessionRoster reads the flat users collection and keeps the cohort's students.
func (s *AttendanceService) sessionRoster(ctx context.Context, department string, cohort domain.Cohort) ([]domain.User, error) {
	all, err := s.roster.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session roster: %w", err)
	}
	return filterCohort(all, department, cohort), nil
}

func (s *AttendanceService) partition(roster []domain.User, in ports.SessionInput) (present, absent []domain.User) {
	if in.AllPresent {
		return roster, nil
	}
	return Partition(roster, ParseRollList(in.PresentRolls))
}

func (s *AttendanceService) sessionDate(d time.Time) time.Time {
	if d.IsZero() {
		return s.now()
	}
	return d
}

// ParseRollList splits free text on commas and whitespace into a set of roll numbers.
func ParseRollList(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Partition splits roster into students whose roster key is in rolls and the
// rest, preserving roster order. Entries of rolls matching nobody are ignored.
func Partition(roster []domain.User, rolls map[string]struct{}) (present, absent []domain.User) {
	present = make([]domain.User, 0, len(roster))
	absent = make([]domain.User, 0, len(roster))
	for _, u := range roster {
		if _, ok := rolls[u.RosterKey()]; ok {
			present = append(present, u)
		} else {
			absent = append(absent, u)
		}
	}
	return present, absent
}

// FilterSubject keeps logs of one subject. An empty subject keeps all.
func FilterSubject(logs []domain.AttendanceLog, subject string) []domain.AttendanceLog {
	if subject == "" {
		return logs
	}
	out := make([]domain.AttendanceLog, 0, len(logs))
	for _, l := range logs {
		if l.Subject == subject {
			out = append(out, l)
		}
	}
	return out
}

// Summarize counts logs by status. Percentage is (present+late)/total*100 with
// two decimals, or "0" for no logs.
func Summarize(logs []domain.AttendanceLog) domain.AttendanceSummary {
	var sum domain.AttendanceSummary
	sum.Total = len(logs)
	for _, l := range logs {
		switch l.Status {
		case domain.StatusPresent:
			sum.Present++
		case domain.StatusAbsent:
			sum.Absent++
		case domain.StatusLate:
			sum.Late++
		case domain.StatusLeave:
			sum.Leave++
		}
	}
	sum.Percentage = "0"
	if sum.Total > 0 {
		sum.Percentage = fmt.Sprintf("%.2f", float64(sum.Present+sum.Late)/float64(sum.Total)*100)
	}
	return sum
}

func refs(users []domain.User) []ports.StudentRef {
	out := make([]ports.StudentRef, len(users))
	for i, u := range users {
		out[i] = ports.StudentRef{ID: u.ID, Name: u.Name, RollNumber: u.RosterKey()}
	}
	return out
}
