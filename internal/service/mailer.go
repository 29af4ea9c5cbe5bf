package service

import (
	"context"
	"encoding/json"
	"strings"

	"jobtrackr/internal/entity"
	"jobtrackr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// EmailChannel is one concrete delivery strategy (SMTP connection or a
// transactional-email HTTP API).
type EmailChannel interface {
	Send(ctx context.Context, from string, to []string, subject string, htmlBody string) error
}

// Mailer delivers templated messages through whichever provider is currently
// active and records every attempt durably. The log row is written before the
// dispatch so an attempt is auditable even if the process dies mid-send, and
// transport failures are absorbed into the log instead of reaching callers.
type Mailer struct {
	settings repository.EmailSettingRepository
	logs     repository.EmailLogRepository
	clock    Clock
	logger   logrus.FieldLogger

	// channelFor builds the delivery strategy for a provider row. Overridable
	// in tests; defaults to channelForSetting.
	channelFor func(*entity.EmailProviderSetting) (EmailChannel, error)
}

func NewMailer(
	settings repository.EmailSettingRepository,
	logs repository.EmailLogRepository,
	clock Clock,
	logger logrus.FieldLogger,
) *Mailer {
	if clock == nil {
		clock = RealClock{}
	}
	return &Mailer{
		settings:   settings,
		logs:       logs,
		clock:      clock,
		logger:     logger,
		channelFor: channelForSetting,
	}
}

func (m *Mailer) Send(ctx context.Context, templateName string, data map[string]any, subject string, recipients []string) error {
	provider, err := m.settings.FindActive(ctx)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrNoActiveProvider
	}

	body, err := renderEmailTemplate(templateName, data)
	if err != nil {
		return err
	}

	var contextJSON datatypes.JSON
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			contextJSON = datatypes.JSON(raw)
		}
	}

	log := &entity.EmailLog{
		Subject:         subject,
		Body:            body,
		To:              strings.Join(recipients, ","),
		Context:         contextJSON,
		EmailProviderID: provider.ID,
		Status:          entity.EmailStatusPending,
	}
	if err := m.logs.Create(ctx, log); err != nil {
		return err
	}

	return m.dispatch(ctx, provider, log, recipients, subject, body)
}

// Resend re-delivers a previously logged message through the currently active
// provider, writing a fresh log row. The stored body is sent as-is; the
// template is not re-rendered.
func (m *Mailer) Resend(ctx context.Context, logID uuid.UUID) error {
	original, err := m.logs.FindByID(ctx, logID)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEmailLogNotFound
	}

	provider, err := m.settings.FindActive(ctx)
	if err != nil {
		return err
	}
	if provider == nil {
		return ErrNoActiveProvider
	}

	log := &entity.EmailLog{
		Subject:         original.Subject,
		Body:            original.Body,
		To:              original.To,
		Context:         original.Context,
		EmailProviderID: provider.ID,
		Status:          entity.EmailStatusPending,
	}
	if err := m.logs.Create(ctx, log); err != nil {
		return err
	}

	recipients := strings.Split(original.To, ",")
	return m.dispatch(ctx, provider, log, recipients, original.Subject, original.Body)
}

// dispatch attempts delivery and finalizes the log row either way. Only
// configuration errors (unsupported provider type) surface to the caller;
// transport errors are swallowed into the log.
func (m *Mailer) dispatch(
	ctx context.Context,
	provider *entity.EmailProviderSetting,
	log *entity.EmailLog,
	recipients []string,
	subject string,
	body string,
) error {
	channel, err := m.channelFor(provider)
	if err != nil {
		m.finalize(ctx, log.ID, entity.EmailStatusFailed, err.Error())
		return ErrUnsupportedProvider
	}

	if sendErr := channel.Send(ctx, provider.FromEmail, recipients, subject, body); sendErr != nil {
		m.finalize(ctx, log.ID, entity.EmailStatusFailed, sendErr.Error())
		if m.logger != nil {
			m.logger.WithFields(logrus.Fields{
				"provider": provider.Name,
				"to":       log.To,
			}).WithError(sendErr).Error("email send failed")
		}
		return nil
	}

	now := m.clock.Now()
	if err := m.logs.Finalize(ctx, log.ID, entity.EmailStatusSent, nil, &now); err != nil && m.logger != nil {
		m.logger.WithError(err).Error("email log finalize failed")
	}
	if m.logger != nil {
		m.logger.WithFields(logrus.Fields{
			"provider": provider.Name,
			"to":       log.To,
		}).Info("email sent")
	}
	return nil
}

func (m *Mailer) finalize(ctx context.Context, id uuid.UUID, status entity.EmailStatus, message string) {
	if err := m.logs.Finalize(ctx, id, status, &message, nil); err != nil && m.logger != nil {
		m.logger.WithError(err).Error("email log finalize failed")
	}
}
