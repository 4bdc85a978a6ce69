package ports

import (
	"context"
	"time"
)

// ExportType selects the report layout.
type ExportType string

const (
	ExportBasic   ExportType = "basic"
	ExportMonthly ExportType = "monthly"
	ExportCustom  ExportType = "custom"
	ExportSubject ExportType = "subject"
)

// ExportInput carries the roster filter and report parameters.
type ExportInput struct {
	Type   ExportType
	Filter RosterFilter
	// Month is "YYYY-MM" for monthly exports.
	Month   string
	Start   time.Time
	End     time.Time
	Subject string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// ReportService renders roster and attendance exports.
type ReportService interface {
	Export(ctx context.Context, in ExportInput) (*ExportFile, error)
}
