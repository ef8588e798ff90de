package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

type CompanyService struct {
	repo *store.Repository[models.Company]
	logs *LogService
	lg   *zap.SugaredLogger
}

type CompanyCreate struct {
	Username    string `json:"username"`
	Description string `json:"description"`
}

type CompanyUpdate struct {
	Username    *string `json:"username"`
	Description *string `json:"description"`
}

func (s *CompanyService) GetAll(ctx context.Context) ([]models.Company, error) {
	return s.repo.GetAll(ctx)
}

func (s *CompanyService) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) GetAllForAdmin(ctx context.Context, current *models.Admin) ([]models.Company, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return []models.Company{}, nil
	}
	return s.repo.GetAll(ctx, store.IDIn(scope))
}

func (s *CompanyService) GetByIDForAdmin(ctx context.Context, id uint, current *models.Admin) (*models.Company, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.IDIn(scope))
}

// GetForUser returns the user's own company and nothing else.
func (s *CompanyService) GetForUser(ctx context.Context, current *models.User) (*models.Company, error) {
	if current.CompanyID == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, current.CompanyID)
}

// GetByIDForUser yields the company only when it is the user's own; a
// foreign id comes back nil, indistinguishable from a missing row.
func (s *CompanyService) GetByIDForUser(ctx context.Context, id uint, current *models.User) (*models.Company, error) {
	if current.CompanyID == 0 || id != current.CompanyID {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, in CompanyCreate) (*models.Company, error) {
	company := models.Company{Username: in.Username, Description: in.Description}
	created, err := s.repo.Create(ctx, &company)
	if created != nil {
		s.logs.Record(ctx, nil, created)
	}
	return created, err
}

func (s *CompanyService) Update(ctx context.Context, id uint, in CompanyUpdate) (*models.Company, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil || before == nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if updated != nil {
		s.logs.Record(ctx, before, updated)
	}
	return updated, err
}

func (s *CompanyService) Delete(ctx context.Context, id uint) (*models.Company, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if deleted != nil {
		s.logs.Record(ctx, deleted, nil)
	}
	return deleted, err
}
