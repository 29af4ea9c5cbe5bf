package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const principalKey = "auth_principal"

// Principal is the authenticated identity attached to a request: enough to
// scope queries and authorize without reloading the user row.
type Principal struct {
	UserID   uuid.UUID
	Role     string
	Email    string
	Username string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

func SetPrincipal(c echo.Context, principal Principal) {
	c.Set(principalKey, principal)
}

func PrincipalFromContext(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalKey).(Principal)
	return principal, ok
}
