// Package spreadsheet reads student roster uploads (.xlsx and legacy .xls)
// and renders the import template.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

const (
	TemplateSheet    = "Students"
	TemplateFilename = "student_import_template.xlsx"
	XLSXContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrNoWorksheet    = errors.New("no worksheet found")
	ErrEmptyWorksheet = errors.New("worksheet is empty")
)

var templateHeader = []any{
	"Name", "Email", "Phone", "Gender", "Roll Number", "Year", "Semester", "Division", "Department",
}

var templateExample = []any{
	"John Doe", "john.doe@dypsn.edu", "+91 90000 00001", "Male", "CS001", "2nd", "3", "A", "Computer Science",
}

// Workbook implements the roster spreadsheet port.
type Workbook struct{}

func New() *Workbook {
	return &Workbook{}
}

// ReadRows reads the first sheet. The first row is the header; every later
// non-blank row becomes a map from header text to trimmed cell value, tagged
// with its sheet row number.
func (w *Workbook) ReadRows(filename string, r io.Reader) ([]ports.SheetRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		rows, err = readXLS(data)
	default:
		rows, err = readXLSX(data)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWorksheet
	}
	return toRecords(rows), nil
}

// Template renders a workbook with the header row and one example student.
func (w *Workbook) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &templateHeader); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	if err := f.SetSheetRow(TemplateSheet, "A2", &templateExample); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return buf.Bytes(), nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoWorksheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func toRecords(rows [][]string) []ports.SheetRow {
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]ports.SheetRow, 0, len(rows)-1)
	for n, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		blank := true
		for i, h := range header {
			if h == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			if v != "" {
				blank = false
			}
			rec[h] = v
		}
		if !blank {
			records = append(records, ports.SheetRow{Number: n + 2, Cells: rec})
		}
	}
	return records
}
