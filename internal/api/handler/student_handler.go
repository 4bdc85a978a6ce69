package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/spreadsheet"
)

const maxUploadBytes = 10 << 20

// StudentHandler serves roster management for teachers and HODs.
type StudentHandler struct {
	roster   ports.RosterService
	importer ports.ImportService
	reports  ports.ReportService
}

func NewStudentHandler(roster ports.RosterService, importer ports.ImportService, reports ports.ReportService) *StudentHandler {
	return &StudentHandler{roster: roster, importer: importer, reports: reports}
}

func rosterFilter(c echo.Context, actor ports.Actor) ports.RosterFilter {
	return ports.RosterFilter{
		Department: department(c, actor),
		Cohort: domain.Cohort{
			Year:     c.QueryParam("year"),
			Semester: c.QueryParam("sem"),
			Division: c.QueryParam("div"),
		}.WithDefaults(),
		Search: c.QueryParam("q"),
	}
}

// List handles GET /v1/students.
//
// @Summary      List the students of a cohort
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        year        query     string  false  "Year (default 2nd)"
// @Param        sem         query     string  false  "Semester (default 3)"
// @Param        div         query     string  false  "Division (default A)"
// @Param        department  query     string  false  "Department (default: caller's)"
// @Param        q           query     string  false  "Search by name, email or roll number"
// @Success      200         {object}  studentListResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /v1/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	filter := rosterFilter(c, actor)
	students, err := h.roster.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, studentListResponse{
		Cohort:   filter.Cohort,
		Count:    len(students),
		Students: students,
	})
}

// Create handles POST /v1/students.
//
// @Summary      Add a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      studentRequest  true  "Student details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	in := req.toInput()
	if in.Department == "" {
		in.Department = actor.Department
	}

	student, err := h.roster.Add(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, student)
}

// Update handles PUT /v1/students/:id.
//
// @Summary      Edit a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Student id"
// @Param        body  body      studentRequest  true  "Student details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req studentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	student, err := h.roster.Edit(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, student)
}

// Delete handles DELETE /v1/students/:id.
//
// @Summary      Delete a student
// @Tags         students
// @Security     BearerAuth
// @Param        id   path  string  true  "Student id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.roster.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Import handles POST /v1/students/import.
//
// @Summary      Import students from a spreadsheet
// @Tags         students
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Workbook (.xlsx or .xls)"
// @Success      200   {object}  ports.ImportResult
// @Failure      400   {object}  errorResponse
// @Router       /v1/students/import [post]
func (h *StudentHandler) Import(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "file is required"})
	}
	if fh.Size > maxUploadBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "file too large"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "unreadable upload"})
	}
	defer f.Close()

	result, err := h.importer.Import(c.Request().Context(), fh.Filename, f, department(c, actor))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Template handles GET /v1/students/import/template.
//
// @Summary      Download the import template
// @Tags         students
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /v1/students/import/template [get]
func (h *StudentHandler) Template(c echo.Context) error {
	data, err := h.importer.Template()
	if err != nil {
		return err
	}
	return attachment(c, spreadsheet.TemplateFilename, spreadsheet.XLSXContentType, data)
}

// Export handles GET /v1/students/export.
//
// @Summary      Export the roster or attendance statistics as CSV
// @Tags         students
// @Produce      text/csv
// @Security     BearerAuth
// @Param        type     query  string  false  "basic, monthly, custom or subject"  Enums(basic, monthly, custom, subject)
// @Param        year     query  string  false  "Year"
// @Param        sem      query  string  false  "Semester"
// @Param        div      query  string  false  "Division"
// @Param        month    query  string  false  "YYYY-MM (monthly)"
// @Param        start    query  string  false  "YYYY-MM-DD (custom)"
// @Param        end      query  string  false  "YYYY-MM-DD (custom)"
// @Param        subject  query  string  false  "Subject (subject)"
// @Success      200      {file}  binary
// @Failure      400      {object}  errorResponse
// @Router       /v1/students/export [get]
func (h *StudentHandler) Export(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	start, err := parseDate("start", c.QueryParam("start"))
	if err != nil {
		return err
	}
	end, err := parseDate("end", c.QueryParam("end"))
	if err != nil {
		return err
	}

	file, err := h.reports.Export(c.Request().Context(), ports.ExportInput{
		Type:    ports.ExportType(c.QueryParam("type")),
		Filter:  rosterFilter(c, actor),
		Month:   c.QueryParam("month"),
		Start:   start,
		End:     end,
		Subject: c.QueryParam("subject"),
	})
	if err != nil {
		return err
	}
	return attachment(c, file.Filename, file.ContentType, file.Data)
}

func attachment(c echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, data)
}
