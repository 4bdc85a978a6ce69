package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cse-attendance/attendance-system/internal/api/handler"
	"github.com/cse-attendance/attendance-system/internal/core/domain"
	"github.com/cse-attendance/attendance-system/internal/core/ports"
)

type stubDashboardService struct{}

func (stubDashboardService) Get(_ context.Context, actor ports.Actor) (*ports.Dashboard, error) {
	return &ports.Dashboard{Role: actor.Role, Month: "2024-03"}, nil
}

func signedToken(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    "u1",
		"role":       role,
		"department": "Computer Science",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// The router registers prometheus collectors, so it is built once.
func TestRouter_AccessControl(t *testing.T) {
	e := NewRouter(Services{Dashboard: stubDashboardService{}}, RouterConfig{
		JWTSecret: "secret",
		Log:       zerolog.Nop(),
		Health:    map[string]handler.Pinger{"mongodb": func(context.Context) error { return nil }},
	})

	cases := []struct {
		name   string
		method string
		path   string
		role   string
		code   int
	}{
		{"liveness is open", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness is open", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"roster needs a token", http.MethodGet, "/v1/students", "", http.StatusUnauthorized},
		{"students cannot manage the roster", http.MethodGet, "/v1/students", domain.RoleStudent, http.StatusForbidden},
		{"students cannot record attendance", http.MethodPost, "/v1/attendance/sessions", domain.RoleStudent, http.StatusForbidden},
		{"teachers stay in their department", http.MethodGet, "/v1/students?department=Mechanical", domain.RoleTeacher, http.StatusForbidden},
		{"staff cannot apply for leave", http.MethodPost, "/v1/leaves", domain.RoleTeacher, http.StatusForbidden},
		{"dashboard for students", http.MethodGet, "/v1/dashboard", domain.RoleStudent, http.StatusOK},
		{"dashboard for hods", http.MethodGet, "/v1/dashboard", domain.RoleHOD, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.role != "" {
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tc.role))
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != tc.code {
			t.Errorf("%s: expected %d, got %d (%s)", tc.name, tc.code, rec.Code, rec.Body.String())
		}
	}
}
