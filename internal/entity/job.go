package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobStatusCategory string

const (
	JobStatusOpen      JobStatusCategory = "open"
	JobStatusApplied   JobStatusCategory = "applied"
	JobStatusInterview JobStatusCategory = "interview"
	JobStatusOffer     JobStatusCategory = "offer"
	JobStatusRejected  JobStatusCategory = "rejected"
)

type ApplicationThrough string

const (
	ApplicationThroughEmail   ApplicationThrough = "email"
	ApplicationThroughWebsite ApplicationThrough = "website"
)

type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelExpert       SkillLevel = "expert"
)

type JobApplicationStatus struct {
	ID       uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string            `gorm:"type:varchar(100);not null"`
	Category JobStatusCategory `gorm:"type:varchar(100);not null"`
	Color    string            `gorm:"type:varchar(100)"`
}

type JobSkill struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(100);not null"`
}

type JobApplication struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Position    string `gorm:"type:varchar(100);not null"`
	CompanyName string `gorm:"type:varchar(100);not null"`
	Location    string `gorm:"type:varchar(100)"`

	AppliedDate   *time.Time `gorm:"type:date"`
	JobPostedDate *time.Time `gorm:"type:date"`
	JobClosedDate *time.Time `gorm:"type:date"`

	StatusID uuid.UUID             `gorm:"type:uuid;not null"`
	Status   *JobApplicationStatus `gorm:"constraint:OnDelete:CASCADE"`

	Skills          []JobSkill `gorm:"many2many:job_application_skills"`
	PreferredSkills []JobSkill `gorm:"many2many:job_application_preferred_skills"`

	Description        *string            `gorm:"type:text"`
	RequiredExperience *int
	ContactMail        *string            `gorm:"type:varchar(255)"`
	ApplicationThrough ApplicationThrough `gorm:"type:varchar(100)"`
	ApplicationURL     *string            `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserSkill struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	SkillID uuid.UUID `gorm:"type:uuid;not null"`
	Skill   *JobSkill `gorm:"constraint:OnDelete:CASCADE"`

	Level      SkillLevel `gorm:"type:varchar(100);not null"`
	Confidence int        `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
