package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

func newTestDashboard(roster *stubRosterStore, store *stubAttendanceStore, leaveRepo *stubLeaveRepo) *DashboardService {
	now := func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }
	attendance := newTestAttendance(roster, store, nil)
	attendance.now = now
	svc := NewDashboardService(attendance, newTestRoster(roster, nil), newTestLeaves(leaveRepo), leaveRepo, zerolog.Nop())
	svc.now = now
	return svc
}

func TestDashboardService_Staff(t *testing.T) {
	roster := newStubRosterStore(student("s1", "A", "1"), student("s2", "B", "2"))
	approved := pendingLeave("l3", "s2", cs)
	approved.Status = domain.LeaveApproved
	leaves := newStubLeaveRepo(pendingLeave("l1", "s1", cs), pendingLeave("l2", "s9", "Mechanical"), approved)
	svc := newTestDashboard(roster, &stubAttendanceStore{}, leaves)

	d, err := svc.Get(context.Background(), teacherActor)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if d.StudentCount != 2 || d.PendingLeaves != 1 {
		t.Fatalf("unexpected staff dashboard %+v", d)
	}
	if d.Attendance != nil || d.Leaves != nil {
		t.Fatalf("staff dashboard must not carry student fields")
	}
	if d.Month != "2024-03" || d.Role != domain.RoleTeacher {
		t.Fatalf("unexpected header %q/%q", d.Month, d.Role)
	}
}

func TestDashboardService_Student(t *testing.T) {
	store := &stubAttendanceStore{}
	store.add("s1", time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), domain.StatusPresent, "OS")
	store.add("s1", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), domain.StatusAbsent, "OS")
	store.add("s1", time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), domain.StatusAbsent, "OS")
	leaves := newStubLeaveRepo(pendingLeave("l1", "s1", cs), pendingLeave("l2", "s2", cs))
	svc := newTestDashboard(newStubRosterStore(), store, leaves)

	d, err := svc.Get(context.Background(), studentActor)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if d.Attendance == nil || d.Attendance.Total != 2 || d.Attendance.Percentage != "50.00" {
		t.Fatalf("unexpected monthly summary %+v", d.Attendance)
	}
	if len(d.Leaves) != 1 || d.Leaves[0].ID != "l1" {
		t.Fatalf("expected only own leaves, got %+v", d.Leaves)
	}
}

func TestDashboardService_Error(t *testing.T) {
	roster := newStubRosterStore()
	roster.listErr = errBoom
	svc := newTestDashboard(roster, &stubAttendanceStore{}, newStubLeaveRepo())

	if _, err := svc.Get(context.Background(), teacherActor); !errors.Is(err, errBoom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
