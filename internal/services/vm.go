package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

type VMService struct {
	repo *store.Repository[models.VM]
	lg   *zap.SugaredLogger
}

type VMCreate struct {
	Name        string `json:"name"`
	CPU         int    `json:"cpu"`
	RAM         int    `json:"ram"`
	SSD         int    `json:"ssd"`
	HDD         int    `json:"hdd"`
	State       bool   `json:"state"`
	Description string `json:"description"`
	IPAddress   string `json:"ip_address"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	ServerID    uint   `json:"server_id"`
}

type VMUpdate struct {
	Name        *string `json:"name"`
	CPU         *int    `json:"cpu"`
	RAM         *int    `json:"ram"`
	SSD         *int    `json:"ssd"`
	HDD         *int    `json:"hdd"`
	State       *bool   `json:"state"`
	Description *string `json:"description"`
	IPAddress   *string `json:"ip_address"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	ServerID    *uint   `json:"server_id"`
}

func (s *VMService) GetAll(ctx context.Context) ([]models.VM, error) {
	return s.repo.GetAll(ctx)
}

func (s *VMService) GetByID(ctx context.Context, id uint) (*models.VM, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VMService) GetAllByGroup(ctx context.Context, groupID uint) ([]models.VM, error) {
	return s.repo.GetAll(ctx, store.VMInGroups([]uint{groupID}))
}

func (s *VMService) GetAllByServer(ctx context.Context, serverID uint) ([]models.VM, error) {
	return s.repo.GetAll(ctx, store.ByServer(serverID))
}

func (s *VMService) Create(ctx context.Context, in VMCreate) (*models.VM, error) {
	vm := models.VM{
		Name:        in.Name,
		CPU:         in.CPU,
		RAM:         in.RAM,
		SSD:         in.SSD,
		HDD:         in.HDD,
		State:       in.State,
		Description: in.Description,
		IPAddress:   in.IPAddress,
		Username:    in.Username,
		Password:    in.Password,
		ServerID:    in.ServerID,
	}
	return s.repo.Create(ctx, &vm)
}

func (s *VMService) Update(ctx context.Context, id uint, in VMUpdate) (*models.VM, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.CPU != nil {
		fields["cpu"] = *in.CPU
	}
	if in.RAM != nil {
		fields["ram"] = *in.RAM
	}
	if in.SSD != nil {
		fields["ssd"] = *in.SSD
	}
	if in.HDD != nil {
		fields["hdd"] = *in.HDD
	}
	if in.State != nil {
		fields["state"] = *in.State
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.IPAddress != nil {
		fields["ip_address"] = *in.IPAddress
	}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Password != nil {
		fields["password"] = *in.Password
	}
	if in.ServerID != nil && *in.ServerID != 0 {
		fields["server_id"] = *in.ServerID
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *VMService) Delete(ctx context.Context, id uint) (*models.VM, error) {
	return s.repo.SoftDelete(ctx, id)
}
