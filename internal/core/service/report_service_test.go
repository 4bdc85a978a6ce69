package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

func newTestReports(roster *stubRosterStore, store *stubAttendanceStore) *ReportService {
	svc := NewReportService(newTestRoster(roster, nil), store, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC) }
	return svc
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return rows
}

func TestReportService_Basic(t *testing.T) {
	inactive := student("s2", "Kumar, Ravi", "CS02")
	inactive.IsActive = false
	roster := newStubRosterStore(student("s1", "Asha", "CS01"), inactive)
	svc := newTestReports(roster, &stubAttendanceStore{})

	file, err := svc.Export(context.Background(), ports.ExportInput{Filter: ports.RosterFilter{Department: cs}})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if file.Filename != "students_2nd_3_A_Computer Science.csv" {
		t.Fatalf("unexpected filename %q", file.Filename)
	}
	if file.ContentType != "text/csv" || file.Rows != 2 {
		t.Fatalf("unexpected file meta %+v", file)
	}

	rows := readCSV(t, file.Data)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][9] != "Status" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][0] != "Kumar, Ravi" || rows[2][9] != "Inactive" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}

func TestReportService_Monthly(t *testing.T) {
	roster := newStubRosterStore(student("s1", "Asha", "CS01"), student("s2", "Ravi", "CS02"))
	store := &stubAttendanceStore{}
	store.add("s1", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), domain.StatusPresent, "OS")
	store.add("s1", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), domain.StatusAbsent, "OS")
	store.add("s1", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), domain.StatusPresent, "OS")
	svc := newTestReports(roster, store)

	file, err := svc.Export(context.Background(), ports.ExportInput{Type: ports.ExportMonthly, Month: "2024-02"})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if file.Filename != "student_attendance_2024-02_2nd_3_A.csv" {
		t.Fatalf("unexpected filename %q", file.Filename)
	}

	rows := readCSV(t, file.Data)
	if len(rows) != 3 || len(rows[0]) != 16 {
		t.Fatalf("unexpected shape %v", rows)
	}
	asha := rows[1]
	if asha[9] != "2" || asha[10] != "1" || asha[11] != "1" || asha[14] != "50.00%" {
		t.Fatalf("unexpected stats %v", asha)
	}
	ravi := rows[2]
	if ravi[9] != "0" || ravi[14] != "0%" {
		t.Fatalf("student without logs must get a zero row, got %v", ravi)
	}
}

func TestReportService_Monthly_DefaultsToCurrentMonth(t *testing.T) {
	svc := newTestReports(newStubRosterStore(), &stubAttendanceStore{})
	file, err := svc.Export(context.Background(), ports.ExportInput{Type: ports.ExportMonthly})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if file.Filename != "student_attendance_2024-03_2nd_3_A.csv" {
		t.Fatalf("unexpected filename %q", file.Filename)
	}
}

func TestReportService_Monthly_BadMonth(t *testing.T) {
	svc := newTestReports(newStubRosterStore(), &stubAttendanceStore{})
	_, err := svc.Export(context.Background(), ports.ExportInput{Type: ports.ExportMonthly, Month: "March"})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestReportService_LookupFailureYieldsZeroRow(t *testing.T) {
	roster := newStubRosterStore(student("s1", "Asha", "CS01"), student("s2", "Ravi", "CS02"))
	store := &stubAttendanceStore{failFor: map[string]error{"s1": errBoom}}
	store.add("s2", time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), domain.StatusPresent, "OS")
	svc := newTestReports(roster, store)

	file, err := svc.Export(context.Background(), ports.ExportInput{
		Type:  ports.ExportCustom,
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if file.Filename != "student_attendance_2024-03-01_to_2024-03-05_2nd_3_A.csv" {
		t.Fatalf("unexpected filename %q", file.Filename)
	}
	rows := readCSV(t, file.Data)
	if len(rows) != 3 {
		t.Fatalf("every student needs exactly one row, got %d rows", len(rows))
	}
	if rows[1][9] != "0" || rows[1][14] != "0%" {
		t.Fatalf("expected zeroed row for failed lookup, got %v", rows[1])
	}
	if rows[2][9] != "1" || rows[2][14] != "100.00%" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}

func TestReportService_Custom_InvalidRange(t *testing.T) {
	svc := newTestReports(newStubRosterStore(), &stubAttendanceStore{})
	_, err := svc.Export(context.Background(), ports.ExportInput{
		Type:  ports.ExportCustom,
		Start: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestReportService_Subject(t *testing.T) {
	roster := newStubRosterStore(student("s1", "Asha", "CS01"))
	store := &stubAttendanceStore{}
	store.add("s1", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), domain.StatusPresent, "DBMS")
	store.add("s1", time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC), domain.StatusAbsent, "OS")
	store.add("s1", time.Date(2023, time.December, 11, 0, 0, 0, 0, time.UTC), domain.StatusAbsent, "DBMS")
	svc := newTestReports(roster, store)

	file, err := svc.Export(context.Background(), ports.ExportInput{Type: ports.ExportSubject, Subject: "DBMS"})
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	if file.Filename != "student_attendance_DBMS_2nd_3_A.csv" {
		t.Fatalf("unexpected filename %q", file.Filename)
	}
	rows := readCSV(t, file.Data)
	if rows[1][9] != "1" || rows[1][14] != "100.00%" {
		t.Fatalf("expected only this year's DBMS logs, got %v", rows[1])
	}

	if _, err := svc.Export(context.Background(), ports.ExportInput{Type: ports.ExportSubject}); !errors.Is(err, domain.ErrSubjectRequired) {
		t.Fatalf("expected ErrSubjectRequired, got %v", err)
	}
}

func TestReportService_InvalidType(t *testing.T) {
	svc := newTestReports(newStubRosterStore(), &stubAttendanceStore{})
	if _, err := svc.Export(context.Background(), ports.ExportInput{Type: "weekly"}); !errors.Is(err, domain.ErrInvalidExportType) {
		t.Fatalf("expected ErrInvalidExportType, got %v", err)
	}
}
