package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

var (
	studentActor = ports.Actor{UserID: "s1", Name: "Asha", Role: domain.RoleStudent, Department: cs}
	teacherActor = ports.Actor{UserID: "t1", Name: "Prof", Role: domain.RoleTeacher, Department: cs}
)

func newTestLeaves(repo *stubLeaveRepo) *LeaveService {
	svc := NewLeaveService(repo, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC) }
	return svc
}

func pendingLeave(id, userID, department string) domain.LeaveRequest {
	return domain.LeaveRequest{ID: id, UserID: userID, Department: department, Status: domain.LeavePending, Reason: "fever"}
}

func TestLeaveService_Apply(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaves(repo)

	l, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{
		Actor:  studentActor,
		From:   time.Date(2024, time.March, 4, 15, 0, 0, 0, time.UTC),
		To:     time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
		Reason: "  family function ",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if l.Status != domain.LeavePending || l.Reason != "family function" || l.Department != cs {
		t.Fatalf("unexpected leave %+v", l)
	}
	if l.From.Hour() != 0 {
		t.Fatalf("expected dates truncated to the day, got %v", l.From)
	}
	if _, ok := repo.leaves[l.ID]; !ok {
		t.Fatalf("leave not stored")
	}
}

func TestLeaveService_Apply_Invalid(t *testing.T) {
	svc := newTestLeaves(newStubLeaveRepo())
	from := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{Actor: teacherActor, From: from, To: from, Reason: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("staff apply: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{Actor: studentActor, From: from, To: from.AddDate(0, 0, -1), Reason: "x"}); !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("reversed range: expected ErrInvalidRange, got %v", err)
	}
	if _, err := svc.Apply(context.Background(), ports.ApplyLeaveInput{Actor: studentActor, From: from, To: from, Reason: "  "}); !errors.Is(err, domain.ErrReasonRequired) {
		t.Errorf("blank reason: expected ErrReasonRequired, got %v", err)
	}
}

func TestLeaveService_List_ScopedByRole(t *testing.T) {
	mech := pendingLeave("l3", "s9", "Mechanical")
	repo := newStubLeaveRepo(pendingLeave("l1", "s1", cs), pendingLeave("l2", "s2", cs), mech)
	svc := newTestLeaves(repo)

	own, err := svc.List(context.Background(), studentActor, "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(own) != 1 || own[0].ID != "l1" {
		t.Fatalf("student must only see own leaves, got %+v", own)
	}

	dept, _ := svc.List(context.Background(), teacherActor, domain.LeavePending)
	if len(dept) != 2 {
		t.Fatalf("teacher must see department leaves, got %+v", dept)
	}

	hod := ports.Actor{UserID: "h1", Role: domain.RoleHOD, Department: cs}
	all, _ := svc.List(context.Background(), hod, domain.LeavePending)
	if len(all) != 3 {
		t.Fatalf("HOD must see every department's leaves, got %+v", all)
	}

	approved, _ := svc.List(context.Background(), teacherActor, domain.LeaveApproved)
	if len(approved) != 0 {
		t.Fatalf("status filter not applied, got %+v", approved)
	}
}

func TestLeaveService_Review_Approve(t *testing.T) {
	repo := newStubLeaveRepo(pendingLeave("l1", "s1", cs))
	svc := newTestLeaves(repo)

	l, err := svc.Review(context.Background(), ports.ReviewLeaveInput{
		Actor: teacherActor, ID: "l1", Status: domain.LeaveApproved, Note: " ok ",
	})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if l.Status != domain.LeaveApproved || l.ReviewerID != "t1" || l.ReviewNote != "ok" || l.ReviewedAt == nil {
		t.Fatalf("unexpected reviewed leave %+v", l)
	}
	if repo.leaves["l1"].Status != domain.LeaveApproved {
		t.Fatalf("status not persisted")
	}
}

func TestLeaveService_Review_Permissions(t *testing.T) {
	otherDept := ports.Actor{UserID: "t2", Role: domain.RoleTeacher, Department: "Mechanical"}
	otherStudent := ports.Actor{UserID: "s2", Role: domain.RoleStudent, Department: cs}

	cases := map[string]ports.ReviewLeaveInput{
		"student approves":       {Actor: studentActor, ID: "l1", Status: domain.LeaveApproved},
		"other department":       {Actor: otherDept, ID: "l1", Status: domain.LeaveRejected},
		"cancel someone's leave": {Actor: otherStudent, ID: "l1", Status: domain.LeaveCancelled},
		"staff cancels":          {Actor: teacherActor, ID: "l1", Status: domain.LeaveCancelled},
	}
	for name, in := range cases {
		svc := newTestLeaves(newStubLeaveRepo(pendingLeave("l1", "s1", cs)))
		if _, err := svc.Review(context.Background(), in); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", name, err)
		}
	}
}

func TestLeaveService_Review_HODAnyDepartment(t *testing.T) {
	hod := ports.Actor{UserID: "h1", Role: domain.RoleHOD, Department: "Mechanical"}
	svc := newTestLeaves(newStubLeaveRepo(pendingLeave("l1", "s1", cs)))

	l, err := svc.Review(context.Background(), ports.ReviewLeaveInput{Actor: hod, ID: "l1", Status: domain.LeaveApproved})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if l.Status != domain.LeaveApproved || l.ReviewerID != "h1" {
		t.Fatalf("unexpected review %+v", l)
	}
}

func TestLeaveService_Review_OwnerCancels(t *testing.T) {
	svc := newTestLeaves(newStubLeaveRepo(pendingLeave("l1", "s1", cs)))
	l, err := svc.Review(context.Background(), ports.ReviewLeaveInput{Actor: studentActor, ID: "l1", Status: domain.LeaveCancelled})
	if err != nil {
		t.Fatalf("Review returned error: %v", err)
	}
	if l.Status != domain.LeaveCancelled {
		t.Fatalf("expected cancelled, got %q", l.Status)
	}
}

func TestLeaveService_Review_Transitions(t *testing.T) {
	done := pendingLeave("l1", "s1", cs)
	done.Status = domain.LeaveApproved
	svc := newTestLeaves(newStubLeaveRepo(done))

	_, err := svc.Review(context.Background(), ports.ReviewLeaveInput{Actor: teacherActor, ID: "l1", Status: domain.LeaveRejected})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	_, err = svc.Review(context.Background(), ports.ReviewLeaveInput{Actor: teacherActor, ID: "missing", Status: domain.LeaveRejected})
	if !errors.Is(err, domain.ErrLeaveNotFound) {
		t.Fatalf("expected ErrLeaveNotFound, got %v", err)
	}
}

func TestLeaveService_Review_ConcurrentDecision(t *testing.T) {
	repo := newStubLeaveRepo(pendingLeave("l1", "s1", cs))
	repo.raceTo = domain.LeaveRejected
	svc := newTestLeaves(repo)

	_, err := svc.Review(context.Background(), ports.ReviewLeaveInput{Actor: teacherActor, ID: "l1", Status: domain.LeaveApproved})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if repo.leaves["l1"].Status != domain.LeaveRejected {
		t.Fatalf("losing review must not overwrite the decision")
	}
}
