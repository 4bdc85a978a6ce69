package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ctxActor extracts the claims injected by the Auth middleware. A missing role
// or user id means the token is unusable even if its signature was valid.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	userID, _ := c.Get("user_id").(string)
	if role == "" || userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	department, _ := c.Get("department").(string)
	return ports.Actor{UserID: userID, Name: name, Role: role, Department: department}, nil
}

// parseDate parses an optional YYYY-MM-DD value. Blank yields the zero time.
func parseDate(field, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, field+" must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

// department resolves the department a staff request operates on: the query
// override when given, otherwise the caller's own.
func department(c echo.Context, actor ports.Actor) string {
	if d := c.QueryParam("department"); d != "" {
		return d
	}
	return actor.Department
}
