package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-bounded credential authorizing one
// password change. Rows are never deleted; consumed and expired tokens remain
// as an audit trail.
type PasswordResetToken struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Token     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"default:false;not null"`

	CreatedAt time.Time
}

func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.IsUsed && now.Before(t.ExpiresAt)
}
