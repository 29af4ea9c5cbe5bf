package middleware

import (
	"net/http"
	"strings"

	"jobtrackr/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		SetPrincipal(c, Principal{
			UserID:   userID,
			Role:     claims.Role,
			Email:    claims.Email,
			Username: claims.Username,
		})
		return next(c)
	}
}

// OptionalAuth attaches a principal when a valid bearer token is present but
// lets the request through either way. Handlers that accept an alternate
// credential (for example the import secret) decide authorization themselves.
func (m AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.JWT == nil {
			return next(c)
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return next(c)
		}
		claims, err := m.JWT.ParseAccessToken(token)
		if err != nil {
			return next(c)
		}
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return next(c)
		}
		SetPrincipal(c, Principal{
			UserID:   userID,
			Role:     claims.Role,
			Email:    claims.Email,
			Username: claims.Username,
		})
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
