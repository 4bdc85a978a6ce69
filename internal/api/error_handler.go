package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/infrastructure/spreadsheet"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders the JSON envelope {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidRollNumber),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrSubjectRequired),
		errors.Is(err, domain.ErrInvalidExportType),
		errors.Is(err, domain.ErrReasonRequired),
		errors.Is(err, spreadsheet.ErrNoWorksheet),
		errors.Is(err, spreadsheet.ErrEmptyWorksheet):
		return http.StatusBadRequest, rootMessage(err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrStudentNotFound),
		errors.Is(err, domain.ErrLeaveNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, rootMessage(err)
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrRollNumberExists),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, rootMessage(err)
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, rootMessage(err)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// rootMessage returns the innermost error text, dropping "op: " prefixes.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
