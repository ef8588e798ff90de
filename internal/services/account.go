package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// AccountService mirrors the user/admin services for inventory accounts;
// visibility between accounts flows through shared group membership.
type AccountService struct {
	repo *store.Repository[models.Account]
	lg   *zap.SugaredLogger
}

type AccountCreate struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Surname     string `json:"surname"`
	Name        string `json:"name"`
	Middlename  string `json:"middlename"`
	Department  string `json:"department"`
	Phone       string `json:"phone"`
	Cellular    string `json:"cellular"`
	Post        string `json:"post"`
	Description string `json:"description"`
}

type AccountUpdate struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	Surname     *string `json:"surname"`
	Name        *string `json:"name"`
	Middlename  *string `json:"middlename"`
	Department  *string `json:"department"`
	Phone       *string `json:"phone"`
	Cellular    *string `json:"cellular"`
	Post        *string `json:"post"`
	Description *string `json:"description"`
}

func (s *AccountService) GetAll(ctx context.Context) ([]models.Account, error) {
	return s.repo.GetAll(ctx)
}

func (s *AccountService) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetAllForAccount lists accounts sharing at least one group with the
// caller; an account in no groups sees nothing.
func (s *AccountService) GetAllForAccount(ctx context.Context, current *models.Account) ([]models.Account, error) {
	scope := groupScope(current.Groups)
	if len(scope) == 0 {
		return []models.Account{}, nil
	}
	return s.repo.GetAll(ctx, store.AccountInGroups(scope))
}

func (s *AccountService) GetByIDForAccount(ctx context.Context, id uint, current *models.Account) (*models.Account, error) {
	scope := groupScope(current.Groups)
	if len(scope) == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.AccountInGroups(scope))
}

func (s *AccountService) GetAllByGroup(ctx context.Context, groupID uint) ([]models.Account, error) {
	return s.repo.GetAll(ctx, store.AccountInGroups([]uint{groupID}))
}

func (s *AccountService) Create(ctx context.Context, in AccountCreate) (*models.Account, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	account := models.Account{
		Username:       in.Username,
		HashedPassword: hash,
		Surname:        in.Surname,
		Name:           in.Name,
		Middlename:     in.Middlename,
		Department:     in.Department,
		Phone:          in.Phone,
		Cellular:       in.Cellular,
		Post:           in.Post,
		Description:    in.Description,
	}
	return s.repo.Create(ctx, &account)
}

func (s *AccountService) Update(ctx context.Context, id uint, in AccountUpdate) (*models.Account, error) {
	fields := map[string]any{}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["hashed_password"] = hash
	}
	if in.Surname != nil {
		fields["surname"] = *in.Surname
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Middlename != nil {
		fields["middlename"] = *in.Middlename
	}
	if in.Department != nil {
		fields["department"] = *in.Department
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Cellular != nil {
		fields["cellular"] = *in.Cellular
	}
	if in.Post != nil {
		fields["post"] = *in.Post
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *AccountService) Delete(ctx context.Context, id uint) (*models.Account, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || auth.CheckPassword(account.HashedPassword, password) != nil {
		s.lg.Warnw("failed account authentication", "username", username)
		return nil, nil
	}
	return account, nil
}

func groupScope(groups []models.Group) []uint {
	ids := make([]uint, 0, len(groups))
	for _, g := range groups {
		if !g.Deleted {
			ids = append(ids, g.ID)
		}
	}
	return ids
}
