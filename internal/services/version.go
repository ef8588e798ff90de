package services

import (
	"context"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// VersionService is plain changelog CRUD; nothing routes to it yet.
type VersionService struct {
	repo *store.Repository[models.Version]
}

type VersionCreate struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type VersionUpdate struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

func (s *VersionService) GetAll(ctx context.Context) ([]models.Version, error) {
	return s.repo.GetAll(ctx)
}

func (s *VersionService) GetByID(ctx context.Context, id uint) (*models.Version, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VersionService) Create(ctx context.Context, in VersionCreate) (*models.Version, error) {
	version := models.Version{Title: in.Title, Text: in.Text}
	return s.repo.Create(ctx, &version)
}

func (s *VersionService) Update(ctx context.Context, id uint, in VersionUpdate) (*models.Version, error) {
	fields := map[string]any{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Text != nil {
		fields["text"] = *in.Text
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *VersionService) Delete(ctx context.Context, id uint) (*models.Version, error) {
	return s.repo.SoftDelete(ctx, id)
}
