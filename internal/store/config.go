package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vmmcore/internal/models"
)

// ConfigRepo manages the key/value config table. Config rows have a string
// primary key and no soft-delete flag, so they sit outside Repository.
type ConfigRepo struct {
	db *gorm.DB
}

func NewConfigRepo(db *gorm.DB) *ConfigRepo {
	return &ConfigRepo{db: db}
}

func (r *ConfigRepo) GetAll(ctx context.Context) ([]models.Config, error) {
	var items []models.Config
	if err := r.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ConfigRepo) GetByKey(ctx context.Context, key string) (*models.Config, error) {
	var item models.Config
	err := r.db.WithContext(ctx).First(&item, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ConfigRepo) Create(ctx context.Context, key, value string) (*models.Config, error) {
	item := models.Config{Key: key, Value: value}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&item).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ConfigRepo) Update(ctx context.Context, key, value string) (*models.Config, error) {
	var item models.Config
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "key = ?", key).Error; err != nil {
			return err
		}
		return tx.Model(&item).Update("value", value).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ConfigRepo) Delete(ctx context.Context, key string) (*models.Config, error) {
	var item models.Config
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "key = ?", key).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Config{}, "key = ?", key).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
