package entity

import (
	"time"

	"github.com/google/uuid"
)

type LearningStatusCategory string

const (
	LearningStatusStart      LearningStatusCategory = "start"
	LearningStatusInProgress LearningStatusCategory = "in_progress"
	LearningStatusCompleted  LearningStatusCategory = "completed"
)

type ResourceType string

const (
	ResourceTypeVideo   ResourceType = "video"
	ResourceTypeArticle ResourceType = "article"
	ResourceTypeBook    ResourceType = "book"
	ResourceTypeCourse  ResourceType = "course"
)

type LearningStatus struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Name     string                 `gorm:"type:varchar(20);not null"`
	Category LearningStatusCategory `gorm:"type:varchar(20);not null"`
	Color    string                 `gorm:"type:varchar(20)"`

	Plans     []LearningPlan     `gorm:"foreignKey:StatusID"`
	Resources []LearningResource `gorm:"foreignKey:StatusID"`
}

type LearningPlan struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE"`

	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	ExpectedStartedDate   *time.Time `gorm:"type:date"`
	ExpectedCompletedDate *time.Time `gorm:"type:date"`
	ActualStartedDate     *time.Time `gorm:"type:date"`
	ActualCompletedDate   *time.Time `gorm:"type:date"`

	StatusID uuid.UUID       `gorm:"type:uuid;not null"`
	Status   *LearningStatus `gorm:"constraint:OnDelete:CASCADE"`

	CompletedPercentage int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type LearningResource struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Name         string       `gorm:"type:varchar(100);not null"`
	ResourceType ResourceType `gorm:"type:varchar(20);not null"`
	ResourceURL  string       `gorm:"type:text"`

	PlanID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Plan   *LearningPlan `gorm:"constraint:OnDelete:CASCADE"`

	StatusID uuid.UUID       `gorm:"type:uuid;not null"`
	Status   *LearningStatus `gorm:"constraint:OnDelete:CASCADE"`

	ExpectedStartedDate   *time.Time `gorm:"type:date"`
	ExpectedCompletedDate *time.Time `gorm:"type:date"`
	ActualStartedDate     *time.Time `gorm:"type:date"`
	ActualCompletedDate   *time.Time `gorm:"type:date"`

	Description         string `gorm:"type:text"`
	CompletedPercentage int    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
