package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Role-specific dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	d, err := h.dashboard.Get(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDashboardResponse(d))
}
