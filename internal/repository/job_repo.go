package repository

import (
	"context"
	"errors"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	CreateStatus(ctx context.Context, status *entity.JobApplicationStatus) error
	FindStatus(ctx context.Context, id uuid.UUID) (*entity.JobApplicationStatus, error)
	ListStatuses(ctx context.Context) ([]entity.JobApplicationStatus, error)
	UpdateStatus(ctx context.Context, status *entity.JobApplicationStatus) error
	DeleteStatus(ctx context.Context, id uuid.UUID) error

	CreateSkill(ctx context.Context, skill *entity.JobSkill) error
	FindSkill(ctx context.Context, id uuid.UUID) (*entity.JobSkill, error)
	FindSkills(ctx context.Context, ids []uuid.UUID) ([]entity.JobSkill, error)
	ListSkills(ctx context.Context) ([]entity.JobSkill, error)
	UpdateSkill(ctx context.Context, skill *entity.JobSkill) error
	DeleteSkill(ctx context.Context, id uuid.UUID) error
	CountSkills(ctx context.Context) (int64, error)

	CreateApplication(ctx context.Context, app *entity.JobApplication) error
	FindApplication(ctx context.Context, scope Scope, id uuid.UUID) (*entity.JobApplication, error)
	ListApplications(ctx context.Context, scope Scope) ([]entity.JobApplication, error)
	UpdateApplication(ctx context.Context, app *entity.JobApplication) error
	DeleteApplication(ctx context.Context, id uuid.UUID) error

	CreateUserSkill(ctx context.Context, skill *entity.UserSkill) error
	FindUserSkill(ctx context.Context, scope Scope, id uuid.UUID) (*entity.UserSkill, error)
	ListUserSkills(ctx context.Context, scope Scope) ([]entity.UserSkill, error)
	UpdateUserSkill(ctx context.Context, skill *entity.UserSkill) error
	DeleteUserSkill(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateStatus(ctx context.Context, status *entity.JobApplicationStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *jobRepository) FindStatus(ctx context.Context, id uuid.UUID) (*entity.JobApplicationStatus, error) {
	var status entity.JobApplicationStatus
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *jobRepository) ListStatuses(ctx context.Context) ([]entity.JobApplicationStatus, error) {
	var statuses []entity.JobApplicationStatus
	err := r.db.WithContext(ctx).Find(&statuses).Error
	return statuses, err
}

func (r *jobRepository) UpdateStatus(ctx context.Context, status *entity.JobApplicationStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *jobRepository) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobApplicationStatus{}, "id = ?", id).Error
}

func (r *jobRepository) CreateSkill(ctx context.Context, skill *entity.JobSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *jobRepository) FindSkill(ctx context.Context, id uuid.UUID) (*entity.JobSkill, error) {
	var skill entity.JobSkill
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *jobRepository) FindSkills(ctx context.Context, ids []uuid.UUID) ([]entity.JobSkill, error) {
	var skills []entity.JobSkill
	if len(ids) == 0 {
		return skills, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

func (r *jobRepository) ListSkills(ctx context.Context) ([]entity.JobSkill, error) {
	var skills []entity.JobSkill
	err := r.db.WithContext(ctx).Order("name").Find(&skills).Error
	return skills, err
}

func (r *jobRepository) UpdateSkill(ctx context.Context, skill *entity.JobSkill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *jobRepository) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobSkill{}, "id = ?", id).Error
}

func (r *jobRepository) CountSkills(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.JobSkill{}).Count(&count).Error
	return count, err
}

func (r *jobRepository) CreateApplication(ctx context.Context, app *entity.JobApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *jobRepository) FindApplication(ctx context.Context, scope Scope, id uuid.UUID) (*entity.JobApplication, error) {
	var app entity.JobApplication
	query := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Skills").
		Preload("PreferredSkills").
		Where("id = ?", id)
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *jobRepository) ListApplications(ctx context.Context, scope Scope) ([]entity.JobApplication, error) {
	var apps []entity.JobApplication
	query := r.db.WithContext(ctx).
		Preload("Status").
		Preload("Skills").
		Preload("PreferredSkills").
		Order("created_at DESC")
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.Find(&apps).Error
	return apps, err
}

func (r *jobRepository) UpdateApplication(ctx context.Context, app *entity.JobApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(app).Association("Skills").Replace(app.Skills); err != nil {
			return err
		}
		if err := tx.Model(app).Association("PreferredSkills").Replace(app.PreferredSkills); err != nil {
			return err
		}
		return tx.Save(app).Error
	})
}

func (r *jobRepository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.JobApplication{}, "id = ?", id).Error
}

func (r *jobRepository) CreateUserSkill(ctx context.Context, skill *entity.UserSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *jobRepository) FindUserSkill(ctx context.Context, scope Scope, id uuid.UUID) (*entity.UserSkill, error) {
	var skill entity.UserSkill
	query := r.db.WithContext(ctx).
		Preload("Skill").
		Where("id = ?", id)
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (r *jobRepository) ListUserSkills(ctx context.Context, scope Scope) ([]entity.UserSkill, error) {
	var skills []entity.UserSkill
	query := r.db.WithContext(ctx).
		Preload("Skill").
		Order("created_at DESC")
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.Find(&skills).Error
	return skills, err
}

func (r *jobRepository) UpdateUserSkill(ctx context.Context, skill *entity.UserSkill) error {
	return r.db.WithContext(ctx).Save(skill).Error
}

func (r *jobRepository) DeleteUserSkill(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.UserSkill{}, "id = ?", id).Error
}
