package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/api/metrics"
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

const csvContentType = "text/csv"

var rosterHeader = []string{
	"Name", "Email", "Phone", "Gender", "Roll Number", "Year", "Semester", "Division", "Department", "Status",
}

var attendanceHeader = []string{
	"Name", "Email", "Roll Number", "Phone", "Gender", "Year", "Semester", "Division", "Department",
	"Total Days", "Present Days", "Absent Days", "Late Days", "Leave Days", "Attendance Percentage", "Status",
}

type ReportService struct {
	roster     ports.RosterService
	attendance ports.AttendanceStore
	log        zerolog.Logger
	now        func() time.Time
}

func NewReportService(roster ports.RosterService, attendance ports.AttendanceStore, log zerolog.Logger) *ReportService {
	return &ReportService{
		roster:     roster,
		attendance: attendance,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Export renders the filtered roster, optionally with per-student attendance
// statistics, as CSV. Every student gets exactly one row.
func (s *ReportService) Export(ctx context.Context, in ports.ExportInput) (*ports.ExportFile, error) {
	cohort := in.Filter.Cohort.WithDefaults()
	in.Filter.Cohort = cohort

	var (
		rng      domain.DateRange
		filename string
		subject  string
	)
	switch in.Type {
	case ports.ExportBasic, "":
		in.Type = ports.ExportBasic
		filename = fmt.Sprintf("students_%s_%s_%s_%s.csv", cohort.Year, cohort.Semester, cohort.Division, in.Filter.Department)
	case ports.ExportMonthly:
		month := in.Month
		if month == "" {
			month = s.now().Format("2006-01")
		}
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, fmt.Errorf("%w: month must be YYYY-MM", domain.ErrInvalidRange)
		}
		rng = domain.MonthRange(t.Year(), t.Month(), time.UTC)
		filename = fmt.Sprintf("student_attendance_%s_%s_%s_%s.csv", month, cohort.Year, cohort.Semester, cohort.Division)
	case ports.ExportCustom:
		rng = domain.DateRange{Start: in.Start, End: in.End}
		if err := rng.Validate(); err != nil {
			return nil, err
		}
		filename = fmt.Sprintf("student_attendance_%s_to_%s_%s_%s_%s.csv",
			in.Start.Format("2006-01-02"), in.End.Format("2006-01-02"), cohort.Year, cohort.Semester, cohort.Division)
	case ports.ExportSubject:
		if in.Subject == "" {
			return nil, domain.ErrSubjectRequired
		}
		now := s.now()
		rng = domain.DateRange{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: now}
		subject = in.Subject
		filename = fmt.Sprintf("student_attendance_%s_%s_%s_%s.csv", in.Subject, cohort.Year, cohort.Semester, cohort.Division)
	default:
		return nil, domain.ErrInvalidExportType
	}

	students, err := s.roster.List(ctx, in.Filter)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	var rows [][]string
	if in.Type == ports.ExportBasic {
		rows = RosterRows(students)
	} else {
		rows = s.attendanceRows(ctx, students, rng, subject)
	}

	data, err := writeCSV(rows)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues(string(in.Type)).Inc()
	s.log.Info().Str("type", string(in.Type)).Str("file", filename).Int("rows", len(students)).Msg("export rendered")

	return &ports.ExportFile{
		Filename:    filename,
		ContentType: csvContentType,
		Data:        data,
		Rows:        len(students),
	}, nil
}

// RosterRows renders the roster export, header first.
func RosterRows(students []domain.User) [][]string {
	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, rosterHeader)
	for _, u := range students {
		rows = append(rows, []string{
			u.Name, u.Email, u.Phone, u.Gender, u.RollNumber,
			u.Year, u.Semester, u.Division, u.Department, activeLabel(u.IsActive),
		})
	}
	return rows
}

func (s *ReportService) attendanceRows(ctx context.Context, students []domain.User, rng domain.DateRange, subject string) [][]string {
	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, attendanceHeader)
	for _, u := range students {
		rows = append(rows, AttendanceRow(u, s.studentSummary(ctx, u, rng, subject)))
	}
	return rows
}

// studentSummary never fails: a lookup error yields an all-zero summary.
func (s *ReportService) studentSummary(ctx context.Context, u domain.User, rng domain.DateRange, subject string) domain.AttendanceSummary {
	logs, err := s.attendance.FindByUserAndRange(ctx, u.ID, rng)
	if err != nil {
		metrics.ExportRowFallbacksTotal.Inc()
		s.log.Warn().Err(err).Str("student_id", u.ID).Msg("attendance lookup failed, exporting zeroed row")
		return Summarize(nil)
	}
	return Summarize(FilterSubject(logs, subject))
}

// AttendanceRow renders one attendance export row for u.
func AttendanceRow(u domain.User, sum domain.AttendanceSummary) []string {
	return []string{
		u.Name, u.Email, u.RollNumber, u.Phone, u.Gender,
		u.Year, u.Semester, u.Division, u.Department,
		strconv.Itoa(sum.Total),
		strconv.Itoa(sum.Present),
		strconv.Itoa(sum.Absent),
		strconv.Itoa(sum.Late),
		strconv.Itoa(sum.Leave),
		sum.Percentage + "%",
		activeLabel(u.IsActive),
	}
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
