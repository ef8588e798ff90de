package services

import (
	"context"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// ConfigService is owner-only at the route layer; it carries no scoping of
// its own.
type ConfigService struct {
	repo *store.ConfigRepo
}

type ConfigCreate struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ConfigUpdate struct {
	Value string `json:"value"`
}

func (s *ConfigService) GetAll(ctx context.Context) ([]models.Config, error) {
	return s.repo.GetAll(ctx)
}

func (s *ConfigService) GetByKey(ctx context.Context, key string) (*models.Config, error) {
	return s.repo.GetByKey(ctx, key)
}

func (s *ConfigService) Create(ctx context.Context, in ConfigCreate) (*models.Config, error) {
	return s.repo.Create(ctx, in.Key, in.Value)
}

func (s *ConfigService) Update(ctx context.Context, key string, in ConfigUpdate) (*models.Config, error) {
	return s.repo.Update(ctx, key, in.Value)
}

func (s *ConfigService) Delete(ctx context.Context, key string) (*models.Config, error) {
	return s.repo.Delete(ctx, key)
}
