package repository

import (
	"context"
	"errors"

	"jobtrackr/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailSettingRepository interface {
	// Save persists a provider row. When the row is active, every other row
	// is deactivated inside the same transaction so at most one provider is
	// active after any sequence of writes.
	Save(ctx context.Context, setting *entity.EmailProviderSetting) error
	Activate(ctx context.Context, id uuid.UUID) error
	FindActive(ctx context.Context) (*entity.EmailProviderSetting, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailProviderSetting, error)
	List(ctx context.Context) ([]entity.EmailProviderSetting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type emailSettingRepository struct {
	db *gorm.DB
}

func NewEmailSettingRepository(db *gorm.DB) EmailSettingRepository {
	return &emailSettingRepository{db: db}
}

func (r *emailSettingRepository) Save(ctx context.Context, setting *entity.EmailProviderSetting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if setting.IsActive {
			if err := tx.Model(&entity.EmailProviderSetting{}).
				Where("id <> ?", setting.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(setting).Error
	})
}

func (r *emailSettingRepository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.EmailProviderSetting{}).
			Where("id <> ?", id).
			Update("is_active", false).Error; err != nil {
			return err
		}
		result := tx.Model(&entity.EmailProviderSetting{}).
			Where("id = ?", id).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *emailSettingRepository) FindActive(ctx context.Context) (*entity.EmailProviderSetting, error) {
	var setting entity.EmailProviderSetting
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *emailSettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmailProviderSetting, error) {
	var setting entity.EmailProviderSetting
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *emailSettingRepository) List(ctx context.Context) ([]entity.EmailProviderSetting, error) {
	var settings []entity.EmailProviderSetting
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&settings).
		Error
	return settings, err
}

func (r *emailSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.EmailProviderSetting{}, "id = ?", id).Error
}
