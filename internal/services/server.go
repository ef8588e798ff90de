package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

type ServerService struct {
	repo *store.Repository[models.Server]
	db   *gorm.DB
	lg   *zap.SugaredLogger
}

type ServerCreate struct {
	IPAddress   string `json:"ip_address"`
	Name        string `json:"name"`
	Specs       string `json:"specs"`
	Description string `json:"description"`
	Username    string `json:"username"`
	Password    string `json:"password"`
}

type ServerUpdate struct {
	IPAddress   *string `json:"ip_address"`
	Name        *string `json:"name"`
	Specs       *string `json:"specs"`
	Description *string `json:"description"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
}

func (s *ServerService) GetAll(ctx context.Context) ([]models.Server, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServerService) GetByID(ctx context.Context, id uint) (*models.Server, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ServerService) Create(ctx context.Context, in ServerCreate) (*models.Server, error) {
	server := models.Server{
		IPAddress:   in.IPAddress,
		Name:        in.Name,
		Specs:       in.Specs,
		Description: in.Description,
		Username:    in.Username,
		Password:    in.Password,
	}
	return s.repo.Create(ctx, &server)
}

func (s *ServerService) Update(ctx context.Context, id uint, in ServerUpdate) (*models.Server, error) {
	fields := map[string]any{}
	if in.IPAddress != nil {
		fields["ip_address"] = *in.IPAddress
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Specs != nil {
		fields["specs"] = *in.Specs
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Password != nil {
		fields["password"] = *in.Password
	}
	return s.repo.Update(ctx, id, fields)
}

// Delete soft-deletes a server and cascades to its vms in one transaction.
func (s *ServerService) Delete(ctx context.Context, id uint) (*models.Server, error) {
	var server models.Server
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&server, "id = ? AND deleted = ?", id, false).Error; err != nil {
			return err
		}
		if err := tx.Model(&server).Update("deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.VM{}).
			Where("server_id = ? AND deleted = ?", id, false).
			Update("deleted", true).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &server, nil
}
