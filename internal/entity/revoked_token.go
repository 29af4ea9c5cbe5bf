package entity

import (
	"time"

	"github.com/google/uuid"
)

// RevokedToken is a denylist entry for a refresh token. ExpiresAt mirrors the
// token's own expiry so stale entries can be swept once they are inert.
type RevokedToken struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	JTI    string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID uuid.UUID `gorm:"type:uuid;index"`

	ExpiresAt time.Time
	CreatedAt time.Time
}
