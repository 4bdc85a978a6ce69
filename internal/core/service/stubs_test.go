package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Roster store
// ---------------------------------------------------------------------------

type stubRosterStore struct {
	mu     sync.Mutex
	users  map[string]domain.User
	cohort map[string]domain.User // keyed by cohort path

	cohortErr error // returned by ListCohortStudents
	listErr   error // returned by ListUsers / ListStudents
	createErr error
	writes    int
}

func newStubRosterStore(users ...domain.User) *stubRosterStore {
	s := &stubRosterStore{users: map[string]domain.User{}, cohort: map[string]domain.User{}}
	for _, u := range users {
		s.users[u.ID] = u
		if u.Role == domain.RoleStudent {
			s.cohort[stubCohortPath(&u)] = u
		}
	}
	return s
}

func stubCohortPath(u *domain.User) string {
	return u.Cohort().Key() + "/" + u.RosterKey()
}

func (s *stubRosterStore) sorted(m map[string]domain.User, keep func(domain.User) bool) []domain.User {
	out := make([]domain.User, 0, len(m))
	for _, u := range m {
		if keep(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RosterKey() < out[j].RosterKey() })
	return out
}

func (s *stubRosterStore) ListUsers(context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sorted(s.users, func(domain.User) bool { return true }), nil
}

func (s *stubRosterStore) ListStudents(context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.sorted(s.users, func(u domain.User) bool { return u.Role == domain.RoleStudent }), nil
}

func (s *stubRosterStore) ListCohortStudents(_ context.Context, c domain.Cohort) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cohortErr != nil {
		return nil, s.cohortErr
	}
	return s.sorted(s.cohort, func(u domain.User) bool { return u.Cohort() == c }), nil
}

func (s *stubRosterStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return &u, nil
}

func (s *stubRosterStore) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.writes++
	s.users[u.ID] = *u
	return nil
}

func (s *stubRosterStore) CreateCohortRecord(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.cohort[stubCohortPath(u)] = *u
	return nil
}

func (s *stubRosterStore) UpdateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrStudentNotFound
	}
	s.writes++
	s.users[u.ID] = *u
	return nil
}

func (s *stubRosterStore) UpdateCohortRecord(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.cohort[stubCohortPath(u)] = *u
	return nil
}

func (s *stubRosterStore) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrStudentNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *stubRosterStore) DeleteCohortRecord(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cohort, stubCohortPath(u))
	return nil
}

func (s *stubRosterStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRosterStore) ExistsByRollNumber(_ context.Context, roll string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.RollNumber == roll {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Roster cache
// ---------------------------------------------------------------------------

type stubRosterCache struct {
	entries     map[string][]domain.User
	invalidated []string
}

func newStubRosterCache() *stubRosterCache {
	return &stubRosterCache{entries: map[string][]domain.User{}}
}

func (c *stubRosterCache) Get(_ context.Context, key string) ([]domain.User, bool, error) {
	u, ok := c.entries[key]
	return u, ok, nil
}

func (c *stubRosterCache) Set(_ context.Context, key string, users []domain.User) error {
	c.entries[key] = users
	return nil
}

func (c *stubRosterCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
		c.invalidated = append(c.invalidated, k)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Attendance store, batch writer, submission guard
// ---------------------------------------------------------------------------

type stubAttendanceStore struct {
	mu      sync.Mutex
	logs    []domain.AttendanceLog
	failFor map[string]error // user id → error on Create and Find
}

func (s *stubAttendanceStore) Create(_ context.Context, l *domain.AttendanceLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[l.UserID]; err != nil {
		return err
	}
	s.logs = append(s.logs, *l)
	return nil
}

func (s *stubAttendanceStore) FindByUserAndRange(_ context.Context, userID string, r domain.DateRange) ([]domain.AttendanceLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[userID]; err != nil {
		return nil, err
	}
	from, until := r.Bounds()
	out := make([]domain.AttendanceLog, 0)
	for _, l := range s.logs {
		if l.UserID == userID && !l.Date.Before(from) && l.Date.Before(until) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubAttendanceStore) add(userID string, date time.Time, status domain.AttendanceStatus, subject string) {
	s.logs = append(s.logs, domain.AttendanceLog{UserID: userID, Date: date, Status: status, Subject: subject})
}

// seqBatch runs every task in order and returns the first error.
type seqBatch struct {
	runs []string
}

func (b *seqBatch) Run(ctx context.Context, name string, tasks []func(context.Context) error) error {
	b.runs = append(b.runs, name)
	var first error
	for _, t := range tasks {
		if err := t(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type stubGuard struct {
	seen     map[string]bool
	err      error
	released []string
}

func (g *stubGuard) Release(_ context.Context, key string) error {
	delete(g.seen, key)
	g.released = append(g.released, key)
	return nil
}

func (g *stubGuard) Claim(_ context.Context, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.seen == nil {
		g.seen = map[string]bool{}
	}
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}

// ---------------------------------------------------------------------------
// Leave repository
// ---------------------------------------------------------------------------

type stubLeaveRepo struct {
	leaves map[string]domain.LeaveRequest
	// raceTo, when set, is applied to the stored status right before UpdateStatus
	// compares it, simulating a concurrent reviewer.
	raceTo domain.LeaveStatus
}

func newStubLeaveRepo(leaves ...domain.LeaveRequest) *stubLeaveRepo {
	r := &stubLeaveRepo{leaves: map[string]domain.LeaveRequest{}}
	for _, l := range leaves {
		r.leaves[l.ID] = l
	}
	return r
}

func (r *stubLeaveRepo) Create(_ context.Context, l *domain.LeaveRequest) error {
	r.leaves[l.ID] = *l
	return nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	l, ok := r.leaves[id]
	if !ok {
		return nil, domain.ErrLeaveNotFound
	}
	return &l, nil
}

func (r *stubLeaveRepo) List(_ context.Context, f ports.LeaveFilter) ([]domain.LeaveRequest, error) {
	out := make([]domain.LeaveRequest, 0)
	for _, l := range r.leaves {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.Department != "" && l.Department != f.Department {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubLeaveRepo) UpdateStatus(_ context.Context, id string, review ports.LeaveReview) error {
	l, ok := r.leaves[id]
	if !ok {
		return domain.ErrLeaveNotFound
	}
	if r.raceTo != "" {
		l.Status = r.raceTo
	}
	if l.Status != review.From {
		r.leaves[id] = l
		return domain.ErrInvalidTransition
	}
	at := review.At
	l.Status = review.To
	l.ReviewerID = review.ReviewerID
	l.ReviewNote = review.Note
	l.ReviewedAt = &at
	r.leaves[id] = l
	return nil
}

func (r *stubLeaveRepo) CountByStatus(_ context.Context, department string, status domain.LeaveStatus) (int64, error) {
	var n int64
	for _, l := range r.leaves {
		if (department == "" || l.Department == department) && l.Status == status {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Spreadsheet
// ---------------------------------------------------------------------------

type stubSpreadsheet struct {
	rows []ports.SheetRow
	err  error
}

func (s *stubSpreadsheet) ReadRows(string, io.Reader) ([]ports.SheetRow, error) {
	return s.rows, s.err
}

// sheetRows numbers cells as consecutive sheet rows below the header.
func sheetRows(cells []map[string]string) []ports.SheetRow {
	rows := make([]ports.SheetRow, len(cells))
	for i, c := range cells {
		rows[i] = ports.SheetRow{Number: i + 2, Cells: c}
	}
	return rows
}

func (s *stubSpreadsheet) Template() ([]byte, error) {
	return []byte("xlsx"), nil
}

var errBoom = errors.New("boom")

func student(id, name, roll string) domain.User {
	return domain.User{
		ID:          id,
		Name:        name,
		Email:       id + "@dypsn.edu",
		RollNumber:  roll,
		Year:        domain.DefaultYear,
		Semester:    domain.DefaultSemester,
		Division:    domain.DefaultDivision,
		Department:  "Computer Science",
		Role:        domain.RoleStudent,
		AccessLevel: domain.AccessBasic,
		IsActive:    true,
	}
}
