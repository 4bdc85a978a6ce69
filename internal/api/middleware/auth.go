package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the payload of tokens issued at login.
type Claims struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	jwt.RegisteredClaims
}

// apply copies the non-empty claims into the echo context, keyed by their
// JSON names. Handlers read them back through ctxActor.
func (cl *Claims) apply(c echo.Context) {
	for k, v := range map[string]string{
		"user_id":    cl.UserID,
		"name":       cl.Name,
		"email":      cl.Email,
		"role":       cl.Role,
		"department": cl.Department,
	} {
		if v != "" {
			c.Set(k, v)
		}
	}
}

// Auth validates the HS256 bearer token and injects its claims into the
// context. Tokens without a user id or role are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	key := func(*jwt.Token) (interface{}, error) { return []byte(jwtSecret), nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed bearer token")
			}

			claims := &Claims{}
			if _, err := parser.ParseWithClaims(raw, claims, key); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.UserID == "" || claims.Role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token lacks user_id or role")
			}

			claims.apply(c)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
