package repository

import (
	"context"
	"errors"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResetTokenRepository interface {
	Create(ctx context.Context, token *entity.PasswordResetToken) error
	FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	// Consume flips is_used on an unused token. Returns false when the token
	// was already consumed, so concurrent redeemers cannot both win.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
}

type resetTokenRepository struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

func (r *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *resetTokenRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var row entity.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *resetTokenRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.PasswordResetToken{}).
		Where("id = ? AND is_used = false", id).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
