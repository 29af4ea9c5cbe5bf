package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        string    `gorm:"type:varchar(17);uniqueIndex;not null"`
	FirstName    string    `gorm:"type:varchar(30)"`
	LastName     string    `gorm:"type:varchar(30)"`
	PasswordHash string    `gorm:"type:text;not null"`
	Role         UserRole  `gorm:"type:varchar(10);default:'user';not null"`

	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Profile     *Profile
	SocialLinks *SocialLink
}

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Bio               *string `gorm:"type:text"`
	ProfilePictureURL *string `gorm:"type:text"`
	CoverPhotoURL     *string `gorm:"type:text"`
	ResumeURL         *string `gorm:"type:text"`
}

type SocialLink struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	LinkedIn  *string `gorm:"type:text"`
	GitHub    *string `gorm:"type:text"`
	Twitter   *string `gorm:"type:text"`
	Facebook  *string `gorm:"type:text"`
	Instagram *string `gorm:"type:text"`
}
