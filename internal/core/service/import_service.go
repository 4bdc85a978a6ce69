package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/api/metrics"
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

// importColumns lists the header spellings accepted for each student field.
var importColumns = map[string][]string{
	"name":       {"name", "Name", "NAME"},
	"email":      {"email", "Email", "EMAIL"},
	"phone":      {"phone", "Phone", "PHONE"},
	"gender":     {"gender", "Gender", "GENDER"},
	"rollNumber": {"rollNumber", "roll", "RollNumber", "roll_number", "Roll Number"},
	"year":       {"year", "Year", "YEAR"},
	"sem":        {"sem", "Sem", "SEM", "Semester"},
	"div":        {"div", "Div", "DIV", "Division"},
	"department": {"department", "Department", "DEPARTMENT"},
}

type ImportService struct {
	store  ports.RosterStore
	cache  ports.RosterCache
	sheets ports.Spreadsheet
	batch  ports.BatchWriter
	log    zerolog.Logger
}

// NewImportService returns an ImportService. cache may be nil.
func NewImportService(
	store ports.RosterStore,
	cache ports.RosterCache,
	sheets ports.Spreadsheet,
	batch ports.BatchWriter,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{store: store, cache: cache, sheets: sheets, batch: batch, log: log}
}

// Import reads the first sheet of the upload and creates one student per
// valid row. Row numbers in the result are 1-based spreadsheet rows, the
// header being row 1.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader, department string) (*ports.ImportResult, error) {
	rows, err := s.sheets.ReadRows(filename, r)
	if err != nil {
		return nil, fmt.Errorf("import students: %w", err)
	}

	now := time.Now().UTC()
	students := make([]*domain.User, 0, len(rows))
	result := &ports.ImportResult{Skipped: []ports.SkippedRow{}}

	for _, row := range rows {
		student, err := StudentFromRow(row.Cells, department, now)
		if err != nil {
			result.Skipped = append(result.Skipped, ports.SkippedRow{Row: row.Number, Reason: err.Error()})
			metrics.StudentsImportedTotal.WithLabelValues("skipped").Inc()
			continue
		}
		students = append(students, student)
	}

	tasks := make([]func(context.Context) error, 0, len(students))
	for _, st := range students {
		st := st
		tasks = append(tasks, func(ctx context.Context) error {
			if err := s.store.CreateUser(ctx, st); err != nil {
				metrics.StudentsImportedTotal.WithLabelValues("failed").Inc()
				return fmt.Errorf("roll %s: %w", st.RollNumber, err)
			}
			if err := s.store.CreateCohortRecord(ctx, st); err != nil {
				metrics.StudentsImportedTotal.WithLabelValues("failed").Inc()
				return fmt.Errorf("roll %s: cohort record: %w", st.RollNumber, err)
			}
			metrics.StudentsImportedTotal.WithLabelValues("imported").Inc()
			return nil
		})
	}

	runErr := s.batch.Run(ctx, "student_import", tasks)
	s.invalidate(ctx, students)
	if runErr != nil {
		s.log.Error().Err(runErr).Str("file", filename).Int("rows", len(students)).Msg("student import incomplete")
		return nil, fmt.Errorf("import students: %w", runErr)
	}

	result.Imported = len(students)
	s.log.Info().
		Str("file", filename).
		Int("imported", result.Imported).
		Int("skipped", len(result.Skipped)).
		Msg("students imported")
	return result, nil
}

func (s *ImportService) Template() ([]byte, error) {
	return s.sheets.Template()
}

func (s *ImportService) invalidate(ctx context.Context, students []*domain.User) {
	if s.cache == nil || len(students) == 0 {
		return
	}
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, st := range students {
		for _, k := range []string{rosterCacheKey("", st.Cohort()), rosterCacheKey(st.Department, st.Cohort())} {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("roster cache invalidation failed")
	}
}

// StudentFromRow maps one spreadsheet row onto a new student. Blank cohort
// fields take the defaults and a blank department takes fallbackDepartment.
func StudentFromRow(row map[string]string, fallbackDepartment string, now time.Time) (*domain.User, error) {
	name := column(row, "name")
	email := column(row, "email")
	roll := column(row, "rollNumber")
	if err := domain.ValidateStudent(name, email, roll); err != nil {
		return nil, err
	}

	cohort := domain.Cohort{
		Year:     column(row, "year"),
		Semester: column(row, "sem"),
		Division: column(row, "div"),
	}.WithDefaults()

	department := column(row, "department")
	if department == "" {
		department = fallbackDepartment
	}

	return &domain.User{
		ID:          newStudentID(roll),
		Name:        name,
		Email:       email,
		Phone:       column(row, "phone"),
		Gender:      column(row, "gender"),
		RollNumber:  roll,
		Year:        cohort.Year,
		Semester:    cohort.Semester,
		Division:    cohort.Division,
		Department:  department,
		Role:        domain.RoleStudent,
		AccessLevel: domain.AccessBasic,
		IsActive:    true,
		CreatedAt:   now,
	}, nil
}

// column returns the first non-blank value among the field's header aliases.
func column(row map[string]string, field string) string {
	for _, header := range importColumns[field] {
		if v := strings.TrimSpace(row[header]); v != "" {
			return v
		}
	}
	return ""
}
