package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vmmcore/internal/models"
)

// LogRepo is append-only: audit snapshots are never updated or removed.
type LogRepo struct {
	db *gorm.DB
}

func NewLogRepo(db *gorm.DB) *LogRepo {
	return &LogRepo{db: db}
}

func (r *LogRepo) GetAll(ctx context.Context) ([]models.Log, error) {
	var items []models.Log
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *LogRepo) GetByID(ctx context.Context, id uint) (*models.Log, error) {
	var item models.Log
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *LogRepo) Create(ctx context.Context, before, after models.JSONB) (*models.Log, error) {
	item := models.Log{Before: before, After: after}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
