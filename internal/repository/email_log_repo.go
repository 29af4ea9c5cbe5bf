package repository

import (
	"context"
	"errors"
	"time"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailLogRepository interface {
	Create(ctx context.Context, log *entity.EmailLog) error
	// Finalize records the outcome of a send attempt on an existing row.
	Finalize(ctx context.Context, id uuid.UUID, status entity.EmailStatus, errorMessage *string, sentAt *time.Time) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailLog, error)
	List(ctx context.Context, limit, offset int) ([]entity.EmailLog, error)
}

type emailLogRepository struct {
	db *gorm.DB
}

func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Create(ctx context.Context, log *entity.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *emailLogRepository) Finalize(ctx context.Context, id uuid.UUID, status entity.EmailStatus, errorMessage *string, sentAt *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.EmailLog{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        status,
			"error_message": errorMessage,
			"sent_at":       sentAt,
		}).
		Error
}

func (r *emailLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailLog, error) {
	var log entity.EmailLog
	err := r.db.WithContext(ctx).
		Preload("EmailProvider").
		Where("id = ?", id).
		First(&log).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *emailLogRepository) List(ctx context.Context, limit, offset int) ([]entity.EmailLog, error) {
	var logs []entity.EmailLog
	query := r.db.WithContext(ctx).
		Preload("EmailProvider").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
