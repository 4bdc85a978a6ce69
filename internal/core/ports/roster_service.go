package ports

import (
	"context"
	"io"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// RosterFilter selects the students of one cohort. Department empty = any.
// Search is a case-insensitive substring of name, email or roll number.
type RosterFilter struct {
	Department string
	Cohort     domain.Cohort
	Search     string
}

// StudentInput carries the editable fields of a student record.
type StudentInput struct {
	Name       string
	Email      string
	Phone      string
	Gender     string
	RollNumber string
	Year       string
	Semester   string
	Division   string
	// Department left blank keeps the stored department on Edit and falls
	// back to the default on Add.
	Department string
	// IsActive is only honoured by Edit; new students are always active.
	IsActive *bool
}

// RosterService defines use-case operations on the student roster.
type RosterService interface {
	List(ctx context.Context, filter RosterFilter) ([]domain.User, error)
	Add(ctx context.Context, in StudentInput) (*domain.User, error)
	// Edit and Delete are limited to the actor's department unless the actor
	// is an HOD.
	Edit(ctx context.Context, actor Actor, id string, in StudentInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
	CountDepartment(ctx context.Context, department string) (int, error)
}

// SheetRow is one non-blank data row of an uploaded sheet. Number is the
// 1-based row in the sheet, the header being row 1.
type SheetRow struct {
	Number int
	// Cells is keyed by the header cell text exactly as written.
	Cells map[string]string
}

// Spreadsheet reads uploaded workbooks and renders the import template.
type Spreadsheet interface {
	// ReadRows returns the non-blank data rows of the first sheet.
	ReadRows(filename string, r io.Reader) ([]SheetRow, error)
	Template() ([]byte, error)
}

// SkippedRow explains why an import row was not submitted.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult is returned after the accepted rows were written.
type ImportResult struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

// ImportService turns spreadsheet uploads into roster records.
type ImportService interface {
	Import(ctx context.Context, filename string, r io.Reader, department string) (*ImportResult, error)
	Template() ([]byte, error)
}
