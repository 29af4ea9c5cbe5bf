package repository

import (
	"context"
	"time"

	"jobtrackr/internal/entity"

	"gorm.io/gorm"
)

type RevokedTokenRepository interface {
	Add(ctx context.Context, token *entity.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	CleanupExpired(ctx context.Context) error
}

type revokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) RevokedTokenRepository {
	return &revokedTokenRepository{db: db}
}

func (r *revokedTokenRepository) Add(ctx context.Context, token *entity.RevokedToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *revokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).
		Error
	return count > 0, err
}

func (r *revokedTokenRepository) CleanupExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.RevokedToken{}).
		Error
}
