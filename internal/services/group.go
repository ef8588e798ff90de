package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

type GroupService struct {
	repo  *store.Repository[models.Group]
	links *store.Links
	lg    *zap.SugaredLogger
}

type GroupCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *GroupService) GetAll(ctx context.Context) ([]models.Group, error) {
	return s.repo.GetAll(ctx)
}

func (s *GroupService) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GroupService) Create(ctx context.Context, in GroupCreate) (*models.Group, error) {
	group := models.Group{Name: in.Name, Description: in.Description}
	return s.repo.Create(ctx, &group)
}

func (s *GroupService) Update(ctx context.Context, id uint, in GroupUpdate) (*models.Group, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *GroupService) Delete(ctx context.Context, id uint) (*models.Group, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *GroupService) AddAccount(ctx context.Context, groupID, accountID uint) (*models.Group, error) {
	return s.links.AddAccountToGroup(ctx, groupID, accountID)
}

func (s *GroupService) RemoveAccount(ctx context.Context, groupID, accountID uint) (*models.Group, error) {
	return s.links.RemoveAccountFromGroup(ctx, groupID, accountID)
}

func (s *GroupService) AddVM(ctx context.Context, groupID, vmID uint) (*models.Group, error) {
	return s.links.AddVMToGroup(ctx, groupID, vmID)
}

func (s *GroupService) RemoveVM(ctx context.Context, groupID, vmID uint) (*models.Group, error) {
	return s.links.RemoveVMFromGroup(ctx, groupID, vmID)
}
