package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type LeaveHandler struct {
	leaves ports.LeaveService
}

func NewLeaveHandler(leaves ports.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaves: leaves}
}

// Apply handles POST /v1/leaves.
//
// @Summary      Apply for leave
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyLeaveRequest  true  "Leave request"
// @Success      201   {object}  domain.LeaveRequest
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/leaves [post]
func (h *LeaveHandler) Apply(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req applyLeaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	from, err := parseDate("from", req.From)
	if err != nil {
		return err
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return err
	}

	leave, err := h.leaves.Apply(c.Request().Context(), ports.ApplyLeaveInput{
		Actor:  actor,
		From:   from,
		To:     to,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, leave)
}

// List handles GET /v1/leaves.
//
// @Summary      List leave requests
// @Description  Students see their own requests; teachers and HODs see their department's.
// @Tags         leaves
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending, approved, rejected or cancelled"
// @Success      200     {array}   domain.LeaveRequest
// @Failure      400     {object}  errorResponse
// @Router       /v1/leaves [get]
func (h *LeaveHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	status := domain.LeaveStatus(c.QueryParam("status"))
	switch status {
	case "", domain.LeavePending, domain.LeaveApproved, domain.LeaveRejected, domain.LeaveCancelled:
	default:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "status must be one of: pending approved rejected cancelled"})
	}

	leaves, err := h.leaves.List(c.Request().Context(), actor, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leaves)
}

// Review handles PATCH /v1/leaves/:id.
//
// @Summary      Approve, reject or cancel a pending leave request
// @Tags         leaves
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Leave id"
// @Param        body  body      reviewLeaveRequest  true  "Decision"
// @Success      200   {object}  domain.LeaveRequest
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/leaves/{id} [patch]
func (h *LeaveHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reviewLeaveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	leave, err := h.leaves.Review(c.Request().Context(), ports.ReviewLeaveInput{
		Actor:  actor,
		ID:     c.Param("id"),
		Status: domain.LeaveStatus(req.Status),
		Note:   req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leave)
}
