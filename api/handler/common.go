package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"jobtrackr/api/middleware"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrPhoneTaken):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrResetTokenNotFound),
		errors.Is(err, service.ErrResetTokenExpired),
		errors.Is(err, service.ErrResetTokenUsed):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrEmailLogNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNoActiveProvider):
		status = http.StatusServiceUnavailable
	case errors.Is(err, service.ErrUnsupportedProvider):
		status = http.StatusBadRequest
	}
	return writeError(c, status, err)
}

var errNotFound = errors.New("not found")

func writeNotFound(c echo.Context) error {
	return writeError(c, http.StatusNotFound, errNotFound)
}

func principal(c echo.Context) (middleware.Principal, error) {
	p, ok := middleware.PrincipalFromContext(c)
	if !ok {
		return middleware.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return p, nil
}

func requestScope(p middleware.Principal) repository.Scope {
	return repository.Scope{UserID: p.UserID, Admin: p.IsAdmin()}
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, errors.New("invalid id " + value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseLimitOffset(c echo.Context) (int, int) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return limit, offset
}
