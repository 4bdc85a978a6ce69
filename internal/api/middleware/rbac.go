package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/cse-attendance/attendance-system/internal/core/domain"
)

// RBAC admits requests whose role claim is one of roles. Anything else fails
// with domain.ErrForbidden, which the error handler renders as 403.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !slices.Contains(roles, role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// Staff admits teachers and HODs.
func Staff() echo.MiddlewareFunc {
	return RBAC(domain.RoleTeacher, domain.RoleHOD)
}

// Student admits students only.
func Student() echo.MiddlewareFunc {
	return RBAC(domain.RoleStudent)
}

// AnyRole admits every authenticated role.
func AnyRole() echo.MiddlewareFunc {
	return RBAC(domain.RoleStudent, domain.RoleTeacher, domain.RoleHOD)
}

// DepartmentScope stops teachers from reaching into another department via
// the ?department override. HODs may pick any department.
func DepartmentScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			want := c.QueryParam("department")
			if want == "" {
				return next(c)
			}
			role, _ := c.Get("role").(string)
			own, _ := c.Get("department").(string)
			if role != domain.RoleHOD && want != own {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
