package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type AttendanceHandler struct {
	service ports.AttendanceService
	now     func() time.Time
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

func (h *AttendanceHandler) sessionInput(c echo.Context) (ports.SessionInput, error) {
	actor, err := ctxActor(c)
	if err != nil {
		return ports.SessionInput{}, err
	}

	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return ports.SessionInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.SessionInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return ports.SessionInput{}, err
	}

	return ports.SessionInput{
		Department:     department(c, actor),
		Cohort:         domain.Cohort{Year: req.Year, Semester: req.Semester, Division: req.Division},
		Subject:        req.Subject,
		Date:           date,
		PresentRolls:   req.PresentRolls,
		AllPresent:     req.AllPresent,
		Note:           req.Note,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	}, nil
}

// Submit handles POST /v1/attendance/sessions.
//
// @Summary      Record attendance for a class session
// @Description  Every student of the cohort gets one record: present when their roll number is listed, absent otherwise.
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Rejects a second submission with the same key"
// @Param        body             body      sessionRequest  true   "Session"
// @Success      201              {object}  sessionResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /v1/attendance/sessions [post]
func (h *AttendanceHandler) Submit(c echo.Context) error {
	in, err := h.sessionInput(c)
	if err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSessionResponse(result))
}

// Preview handles POST /v1/attendance/sessions/preview.
//
// @Summary      Preview the present/absent split without recording
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sessionRequest  true  "Session"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/attendance/sessions/preview [post]
func (h *AttendanceHandler) Preview(c echo.Context) error {
	in, err := h.sessionInput(c)
	if err != nil {
		return err
	}

	result, err := h.service.Preview(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(result))
}

// Summary handles GET /v1/attendance/summary/:user_id.
//
// @Summary      Attendance summary of one student
// @Description  Range defaults to the current month. Students may only read their own summary.
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true   "Student id"
// @Param        start    query     string  false  "YYYY-MM-DD"
// @Param        end      query     string  false  "YYYY-MM-DD"
// @Param        subject  query     string  false  "Only count this subject"
// @Success      200      {object}  summaryResponse
// @Failure      400      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/attendance/summary/{user_id} [get]
func (h *AttendanceHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	userID := c.Param("user_id")
	if actor.Role == domain.RoleStudent && userID != actor.UserID {
		return domain.ErrForbidden
	}

	rng, err := h.summaryRange(c)
	if err != nil {
		return err
	}
	subject := c.QueryParam("subject")

	sum, err := h.service.Summary(c.Request().Context(), ports.SummaryInput{
		UserID:  userID,
		Range:   rng,
		Subject: subject,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summaryResponse{
		UserID:  userID,
		Start:   rng.Start.Format(dateLayout),
		End:     rng.End.Format(dateLayout),
		Subject: subject,
		Summary: *sum,
	})
}

func (h *AttendanceHandler) summaryRange(c echo.Context) (domain.DateRange, error) {
	start, err := parseDate("start", c.QueryParam("start"))
	if err != nil {
		return domain.DateRange{}, err
	}
	end, err := parseDate("end", c.QueryParam("end"))
	if err != nil {
		return domain.DateRange{}, err
	}
	if start.IsZero() && end.IsZero() {
		now := h.now()
		return domain.MonthRange(now.Year(), now.Month(), time.UTC), nil
	}
	return domain.DateRange{Start: start, End: end}, nil
}
