package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"jobtrackr/api/middleware"
	"jobtrackr/internal/dto"
	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"
	"jobtrackr/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var errInvalidSecretToken = errors.New("invalid secret token")

type AdminHandler struct {
	Users    repository.UserRepository
	Jobs     repository.JobRepository
	Admin    repository.AdminRepository
	Settings repository.EmailSettingRepository
	Logs     repository.EmailLogRepository
	Mailer   *service.Mailer
	Validate *validator.Validate

	// OperationToken authorizes imports without an admin session. Empty
	// disables token-based access.
	OperationToken string
}

func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	totalUsers, err := h.Users.CountByRole(ctx, entity.UserRoleUser)
	if err != nil {
		return writeServiceError(c, err)
	}
	totalSkills, err := h.Jobs.CountSkills(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.AdminStatsResponse{
		TotalUsers:  totalUsers,
		TotalSkills: totalSkills,
	})
}

func (h *AdminHandler) Export(c echo.Context) error {
	dump, err := h.Admin.ExportAll(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	payload, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return writeServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="database_export.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, payload)
}

func (h *AdminHandler) Import(c echo.Context) error {
	var req dto.ImportRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if !h.importAuthorized(c, req.SecretToken) {
		return writeError(c, http.StatusUnauthorized, errInvalidSecretToken)
	}
	if err := h.Admin.ImportAll(c.Request().Context(), req.Data); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Data imported successfully"})
}

// importAuthorized accepts either the configured operation token or an
// authenticated admin session.
func (h *AdminHandler) importAuthorized(c echo.Context, secretToken string) bool {
	if h.OperationToken != "" && secretToken != "" &&
		subtle.ConstantTimeCompare([]byte(secretToken), []byte(h.OperationToken)) == 1 {
		return true
	}
	p, ok := middleware.PrincipalFromContext(c)
	return ok && p.IsAdmin()
}

func (h *AdminHandler) ListEmailSettings(c echo.Context) error {
	settings, err := h.Settings.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.EmailSettingResponsesFromEntities(settings))
}

func (h *AdminHandler) CreateEmailSetting(c echo.Context) error {
	var req dto.EmailSettingRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	setting := &entity.EmailProviderSetting{}
	applyEmailSettingRequest(setting, req)
	if err := h.Settings.Save(c.Request().Context(), setting); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.EmailSettingResponseFromEntity(setting))
}

func (h *AdminHandler) GetEmailSetting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	setting, err := h.Settings.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if setting == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.EmailSettingResponseFromEntity(setting))
}

func (h *AdminHandler) UpdateEmailSetting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.EmailSettingRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Validate.Struct(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	setting, err := h.Settings.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if setting == nil {
		return writeNotFound(c)
	}
	applyEmailSettingRequest(setting, req)
	if err := h.Settings.Save(c.Request().Context(), setting); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.EmailSettingResponseFromEntity(setting))
}

func (h *AdminHandler) DeleteEmailSetting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Settings.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ActivateEmailSetting(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Settings.Activate(c.Request().Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return writeNotFound(c)
		}
		return writeServiceError(c, err)
	}
	setting, err := h.Settings.FindByID(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	if setting == nil {
		return writeNotFound(c)
	}
	return c.JSON(http.StatusOK, dto.EmailSettingResponseFromEntity(setting))
}

func (h *AdminHandler) ListEmailLogs(c echo.Context) error {
	limit, offset := parseLimitOffset(c)
	logs, err := h.Logs.List(c.Request().Context(), limit, offset)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.EmailLogResponsesFromEntities(logs))
}

func (h *AdminHandler) ResendEmail(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Mailer.Resend(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Email queued for delivery"})
}

func applyEmailSettingRequest(setting *entity.EmailProviderSetting, req dto.EmailSettingRequest) {
	setting.Name = req.Name
	setting.ProviderType = entity.EmailProviderType(req.ProviderType)
	setting.Host = req.Host
	setting.Port = req.Port
	setting.FromEmail = req.FromEmail
	setting.Username = req.Username
	if req.Password != nil {
		setting.Password = req.Password
	}
	if req.UseTLS != nil {
		setting.UseTLS = *req.UseTLS
	}
	if req.UseSSL != nil {
		setting.UseSSL = *req.UseSSL
	}
	if req.APIKey != nil {
		setting.APIKey = req.APIKey
	}
	setting.IsActive = req.IsActive
}
