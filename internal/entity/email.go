package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type EmailProviderType string

const (
	ProviderSMTP     EmailProviderType = "smtp"
	ProviderSendGrid EmailProviderType = "sendgrid"
	ProviderMailgun  EmailProviderType = "mailgun"
	ProviderResend   EmailProviderType = "resend"
	ProviderSES      EmailProviderType = "ses"
)

type EmailStatus string

const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
	EmailStatusFailed  EmailStatus = "failed"
)

// EmailProviderSetting is one outbound email channel. At most one row is
// active at a time; activating a row clears is_active on all others inside
// the same transaction.
type EmailProviderSetting struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"type:varchar(50);uniqueIndex;not null"`
	ProviderType EmailProviderType `gorm:"type:varchar(20);not null"`

	Host      *string `gorm:"type:varchar(255)"`
	Port      *int
	FromEmail string  `gorm:"type:varchar(255);not null"`
	Username  *string `gorm:"type:varchar(255)"`
	Password  *string `gorm:"type:varchar(255)"`
	UseTLS    bool    `gorm:"default:true"`
	UseSSL    bool    `gorm:"default:false"`
	APIKey    *string `gorm:"type:varchar(255)"`

	IsActive bool `gorm:"default:false"`

	CreatedAt time.Time
}

// EmailLog is an append-only record of every send attempt. The row is written
// with status pending before dispatch and finalized to sent or failed after.
type EmailLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Subject string `gorm:"type:varchar(255);not null"`
	Body    string `gorm:"type:text;not null"`
	To      string `gorm:"type:varchar(255);not null"`

	Context datatypes.JSON

	EmailProviderID uuid.UUID             `gorm:"type:uuid;not null"`
	EmailProvider   *EmailProviderSetting `gorm:"constraint:OnDelete:CASCADE"`

	Status       EmailStatus `gorm:"type:varchar(20);default:'pending';not null"`
	ErrorMessage *string     `gorm:"type:text"`
	SentAt       *time.Time

	CreatedAt time.Time
}
