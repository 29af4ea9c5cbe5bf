package repository

import (
	"context"
	"errors"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearningRepository interface {
	CreateStatus(ctx context.Context, status *entity.LearningStatus) error
	FindStatus(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningStatus, error)
	ListStatuses(ctx context.Context, scope Scope) ([]entity.LearningStatus, error)
	UpdateStatus(ctx context.Context, status *entity.LearningStatus) error
	DeleteStatus(ctx context.Context, id uuid.UUID) error

	CreatePlan(ctx context.Context, plan *entity.LearningPlan) error
	FindPlan(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningPlan, error)
	ListPlans(ctx context.Context, scope Scope) ([]entity.LearningPlan, error)
	UpdatePlan(ctx context.Context, plan *entity.LearningPlan) error
	DeletePlan(ctx context.Context, id uuid.UUID) error

	CreateResource(ctx context.Context, resource *entity.LearningResource) error
	FindResource(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningResource, error)
	ListResources(ctx context.Context, scope Scope) ([]entity.LearningResource, error)
	UpdateResource(ctx context.Context, resource *entity.LearningResource) error
	DeleteResource(ctx context.Context, id uuid.UUID) error

	// Board loads the principal's statuses with their plans and resources
	// nested, for the kanban view.
	Board(ctx context.Context, scope Scope) ([]entity.LearningStatus, error)
}

type learningRepository struct {
	db *gorm.DB
}

func NewLearningRepository(db *gorm.DB) LearningRepository {
	return &learningRepository{db: db}
}

func (r *learningRepository) CreateStatus(ctx context.Context, status *entity.LearningStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *learningRepository) FindStatus(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningStatus, error) {
	var status entity.LearningStatus
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *learningRepository) ListStatuses(ctx context.Context, scope Scope) ([]entity.LearningStatus, error) {
	var statuses []entity.LearningStatus
	query := r.db.WithContext(ctx)
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.Find(&statuses).Error
	return statuses, err
}

func (r *learningRepository) UpdateStatus(ctx context.Context, status *entity.LearningStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *learningRepository) DeleteStatus(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LearningStatus{}, "id = ?", id).Error
}

func (r *learningRepository) CreatePlan(ctx context.Context, plan *entity.LearningPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *learningRepository) FindPlan(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningPlan, error) {
	var plan entity.LearningPlan
	query := r.db.WithContext(ctx).
		Preload("Status").
		Where("id = ?", id)
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *learningRepository) ListPlans(ctx context.Context, scope Scope) ([]entity.LearningPlan, error) {
	var plans []entity.LearningPlan
	query := r.db.WithContext(ctx).
		Preload("Status").
		Order("created_at DESC")
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.Find(&plans).Error
	return plans, err
}

func (r *learningRepository) UpdatePlan(ctx context.Context, plan *entity.LearningPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *learningRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LearningPlan{}, "id = ?", id).Error
}

func (r *learningRepository) CreateResource(ctx context.Context, resource *entity.LearningResource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

// Resources have no owner column; ownership flows through the parent plan.
func (r *learningRepository) FindResource(ctx context.Context, scope Scope, id uuid.UUID) (*entity.LearningResource, error) {
	var resource entity.LearningResource
	query := r.db.WithContext(ctx).
		Preload("Status").
		Where("learning_resources.id = ?", id)
	if !scope.Admin {
		query = query.
			Joins("JOIN learning_plans ON learning_plans.id = learning_resources.plan_id").
			Where("learning_plans.user_id = ?", scope.UserID)
	}
	err := query.First(&resource).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *learningRepository) ListResources(ctx context.Context, scope Scope) ([]entity.LearningResource, error) {
	var resources []entity.LearningResource
	query := r.db.WithContext(ctx).
		Preload("Status").
		Order("learning_resources.created_at DESC")
	if !scope.Admin {
		query = query.
			Joins("JOIN learning_plans ON learning_plans.id = learning_resources.plan_id").
			Where("learning_plans.user_id = ?", scope.UserID)
	}
	err := query.Find(&resources).Error
	return resources, err
}

func (r *learningRepository) UpdateResource(ctx context.Context, resource *entity.LearningResource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *learningRepository) DeleteResource(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LearningResource{}, "id = ?", id).Error
}

func (r *learningRepository) Board(ctx context.Context, scope Scope) ([]entity.LearningStatus, error) {
	var statuses []entity.LearningStatus
	query := r.db.WithContext(ctx).
		Preload("Plans").
		Preload("Resources")
	if !scope.Admin {
		query = query.Where("user_id = ?", scope.UserID)
	}
	err := query.Find(&statuses).Error
	return statuses, err
}
