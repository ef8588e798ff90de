package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// LogService appends before/after snapshots for entity mutations. Audit
// writes are best-effort: a failed append never fails the mutation it
// describes.
type LogService struct {
	repo *store.LogRepo
	lg   *zap.SugaredLogger
}

func (s *LogService) GetAll(ctx context.Context) ([]models.Log, error) {
	return s.repo.GetAll(ctx)
}

func (s *LogService) GetByID(ctx context.Context, id uint) (*models.Log, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LogService) Create(ctx context.Context, before, after models.JSONB) (*models.Log, error) {
	return s.repo.Create(ctx, before, after)
}

func (s *LogService) Record(ctx context.Context, before, after any) {
	if _, err := s.repo.Create(ctx, models.Snapshot(before), models.Snapshot(after)); err != nil {
		s.lg.Errorw("audit log append failed", "error", err)
	}
}
