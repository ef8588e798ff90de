package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vmmcore/internal/models"
)

// errLinkNoop marks a duplicate add or a missing remove. Both collapse into
// a nil result for the caller: the mutation did not happen, nothing errored.
var errLinkNoop = errors.New("link no-op")

// Links performs idempotent many-to-many mutations. Each op is a
// read-modify-write inside one transaction so two concurrent attempts on the
// same pair cannot both succeed.
type Links struct {
	db *gorm.DB
}

func NewLinks(db *gorm.DB) *Links {
	return &Links{db: db}
}

func (l *Links) AddCompanyToAdmin(ctx context.Context, adminID, companyID uint) (*models.Admin, error) {
	var admin models.Admin
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Companies").First(&admin, "id = ? AND deleted = ?", adminID, false).Error; err != nil {
			return err
		}
		var company models.Company
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			return err
		}
		for _, c := range admin.Companies {
			if c.ID == company.ID {
				return errLinkNoop
			}
		}
		if err := tx.Model(&admin).Association("Companies").Append(&company); err != nil {
			return err
		}
		return tx.Preload("Companies", "deleted = ?", false).First(&admin, "id = ?", adminID).Error
	})
	return linkResult(&admin, err)
}

func (l *Links) RemoveCompanyFromAdmin(ctx context.Context, adminID, companyID uint) (*models.Admin, error) {
	var admin models.Admin
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Companies").First(&admin, "id = ? AND deleted = ?", adminID, false).Error; err != nil {
			return err
		}
		var company models.Company
		if err := tx.First(&company, "id = ?", companyID).Error; err != nil {
			return err
		}
		linked := false
		for _, c := range admin.Companies {
			if c.ID == company.ID {
				linked = true
				break
			}
		}
		if !linked {
			return errLinkNoop
		}
		if err := tx.Model(&admin).Association("Companies").Delete(&company); err != nil {
			return err
		}
		return tx.Preload("Companies", "deleted = ?", false).First(&admin, "id = ?", adminID).Error
	})
	return linkResult(&admin, err)
}

func (l *Links) AddAccountToGroup(ctx context.Context, groupID, accountID uint) (*models.Group, error) {
	var group models.Group
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Accounts").First(&group, "id = ? AND deleted = ?", groupID, false).Error; err != nil {
			return err
		}
		var account models.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			return err
		}
		for _, a := range group.Accounts {
			if a.ID == account.ID {
				return errLinkNoop
			}
		}
		if err := tx.Model(&group).Association("Accounts").Append(&account); err != nil {
			return err
		}
		return tx.Preload("Accounts", "deleted = ?", false).First(&group, "id = ?", groupID).Error
	})
	return linkResult(&group, err)
}

func (l *Links) RemoveAccountFromGroup(ctx context.Context, groupID, accountID uint) (*models.Group, error) {
	var group models.Group
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Accounts").First(&group, "id = ? AND deleted = ?", groupID, false).Error; err != nil {
			return err
		}
		var account models.Account
		if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
			return err
		}
		linked := false
		for _, a := range group.Accounts {
			if a.ID == account.ID {
				linked = true
				break
			}
		}
		if !linked {
			return errLinkNoop
		}
		if err := tx.Model(&group).Association("Accounts").Delete(&account); err != nil {
			return err
		}
		return tx.Preload("Accounts", "deleted = ?", false).First(&group, "id = ?", groupID).Error
	})
	return linkResult(&group, err)
}

func (l *Links) AddVMToGroup(ctx context.Context, groupID, vmID uint) (*models.Group, error) {
	var group models.Group
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("VMs").First(&group, "id = ? AND deleted = ?", groupID, false).Error; err != nil {
			return err
		}
		var vm models.VM
		if err := tx.First(&vm, "id = ?", vmID).Error; err != nil {
			return err
		}
		for _, v := range group.VMs {
			if v.ID == vm.ID {
				return errLinkNoop
			}
		}
		if err := tx.Model(&group).Association("VMs").Append(&vm); err != nil {
			return err
		}
		return tx.Preload("VMs", "deleted = ?", false).First(&group, "id = ?", groupID).Error
	})
	return linkResult(&group, err)
}

func (l *Links) RemoveVMFromGroup(ctx context.Context, groupID, vmID uint) (*models.Group, error) {
	var group models.Group
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("VMs").First(&group, "id = ? AND deleted = ?", groupID, false).Error; err != nil {
			return err
		}
		var vm models.VM
		if err := tx.First(&vm, "id = ?", vmID).Error; err != nil {
			return err
		}
		linked := false
		for _, v := range group.VMs {
			if v.ID == vm.ID {
				linked = true
				break
			}
		}
		if !linked {
			return errLinkNoop
		}
		if err := tx.Model(&group).Association("VMs").Delete(&vm); err != nil {
			return err
		}
		return tx.Preload("VMs", "deleted = ?", false).First(&group, "id = ?", groupID).Error
	})
	return linkResult(&group, err)
}

func linkResult[T any](item *T, err error) (*T, error) {
	if errors.Is(err, errLinkNoop) || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}
