package dto

import (
	"time"

	"jobtrackr/internal/entity"
)

type AdminStatsResponse struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalSkills    int64 `json:"totalSkills"`
	RecentActivity int64 `json:"recentActivity"`
}

type ImportRequest struct {
	SecretToken string                      `json:"secret_token"`
	Data        map[string][]map[string]any `json:"data" validate:"required"`
}

type EmailSettingRequest struct {
	Name         string  `json:"name" validate:"required,max=50"`
	ProviderType string  `json:"provider_type" validate:"required,oneof=smtp sendgrid mailgun resend ses"`
	Host         *string `json:"host"`
	Port         *int    `json:"port" validate:"omitempty,min=1,max=65535"`
	FromEmail    string  `json:"from_email" validate:"required,email"`
	Username     *string `json:"username"`
	Password     *string `json:"password"`
	UseTLS       *bool   `json:"use_tls"`
	UseSSL       *bool   `json:"use_ssl"`
	APIKey       *string `json:"api_key"`
	IsActive     bool    `json:"is_active"`
}

type EmailSettingResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ProviderType string    `json:"provider_type"`
	Host         *string   `json:"host"`
	Port         *int      `json:"port"`
	FromEmail    string    `json:"from_email"`
	Username     *string   `json:"username"`
	UseTLS       bool      `json:"use_tls"`
	UseSSL       bool      `json:"use_ssl"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials (password, API key) are write-only and never echoed back.
func EmailSettingResponseFromEntity(setting *entity.EmailProviderSetting) EmailSettingResponse {
	return EmailSettingResponse{
		ID:           setting.ID.String(),
		Name:         setting.Name,
		ProviderType: string(setting.ProviderType),
		Host:         setting.Host,
		Port:         setting.Port,
		FromEmail:    setting.FromEmail,
		Username:     setting.Username,
		UseTLS:       setting.UseTLS,
		UseSSL:       setting.UseSSL,
		IsActive:     setting.IsActive,
		CreatedAt:    setting.CreatedAt,
	}
}

func EmailSettingResponsesFromEntities(settings []entity.EmailProviderSetting) []EmailSettingResponse {
	responses := make([]EmailSettingResponse, 0, len(settings))
	for i := range settings {
		responses = append(responses, EmailSettingResponseFromEntity(&settings[i]))
	}
	return responses
}

type EmailLogResponse struct {
	ID           string     `json:"id"`
	Subject      string     `json:"subject"`
	To           string     `json:"to"`
	Provider     string     `json:"provider,omitempty"`
	Status       string     `json:"status"`
	ErrorMessage *string    `json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func EmailLogResponseFromEntity(log *entity.EmailLog) EmailLogResponse {
	response := EmailLogResponse{
		ID:           log.ID.String(),
		Subject:      log.Subject,
		To:           log.To,
		Status:       string(log.Status),
		ErrorMessage: log.ErrorMessage,
		SentAt:       log.SentAt,
		CreatedAt:    log.CreatedAt,
	}
	if log.EmailProvider != nil {
		response.Provider = log.EmailProvider.Name
	}
	return response
}

func EmailLogResponsesFromEntities(logs []entity.EmailLog) []EmailLogResponse {
	responses := make([]EmailLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, EmailLogResponseFromEntity(&logs[i]))
	}
	return responses
}
