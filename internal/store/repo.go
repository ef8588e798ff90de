package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Filter is a composable predicate fragment. Filters passed to a read are
// ANDed onto the default deleted=false scope.
type Filter func(*gorm.DB) *gorm.DB

// Repository is a generic soft-delete-aware data access layer. Reads exclude
// deleted rows unless a caller goes through Unscoped paths explicitly; writes
// run in their own transaction. Absence (missing row, duplicate key) comes
// back as a nil record with a nil error; only persistence failures are errors.
type Repository[T any] struct {
	db       *gorm.DB
	preloads []string
}

func NewRepository[T any](db *gorm.DB, preloads ...string) *Repository[T] {
	return &Repository[T]{db: db, preloads: preloads}
}

func (r *Repository[T]) query(ctx context.Context, filters []Filter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(new(T)).Where("deleted = ?", false)
	for _, name := range r.preloads {
		q = q.Preload(name, "deleted = ?", false)
	}
	for _, f := range filters {
		q = f(q)
	}
	return q
}

func (r *Repository[T]) GetAll(ctx context.Context, filters ...Filter) ([]T, error) {
	var items []T
	if err := r.query(ctx, filters).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id uint, filters ...Filter) (*T, error) {
	var item T
	err := r.query(ctx, filters).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) GetByUsername(ctx context.Context, username string, filters ...Filter) (*T, error) {
	var item T
	err := r.query(ctx, filters).Where("username = ?", username).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) Create(ctx context.Context, item *T) (*T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(item).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies the given column map to a live row and returns the reloaded
// record, or nil when the row does not exist.
func (r *Repository[T]) Update(ctx context.Context, id uint, fields map[string]any) (*T, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item T
		if err := tx.Model(new(T)).Where("deleted = ?", false).Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Model(&item).Where("id = ?", id).Updates(fields).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SoftDelete flips the deleted flag; the row stays behind for history.
func (r *Repository[T]) SoftDelete(ctx context.Context, id uint) (*T, error) {
	var item T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(new(T)).Where("deleted = ?", false).Where("id = ?", id).First(&item).Error; err != nil {
			return err
		}
		return tx.Model(&item).Where("id = ?", id).Update("deleted", true).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
