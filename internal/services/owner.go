package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

type OwnerService struct {
	repo   *store.Repository[models.Owner]
	tokens *auth.TokenService
	lg     *zap.SugaredLogger
}

type OwnerCreate struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type OwnerUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (s *OwnerService) GetAll(ctx context.Context) ([]models.Owner, error) {
	return s.repo.GetAll(ctx)
}

func (s *OwnerService) GetByID(ctx context.Context, id uint) (*models.Owner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OwnerService) GetByUsername(ctx context.Context, username string) (*models.Owner, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *OwnerService) Create(ctx context.Context, in OwnerCreate) (*models.Owner, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &models.Owner{Username: in.Username, HashedPassword: hash})
}

func (s *OwnerService) Update(ctx context.Context, id uint, in OwnerUpdate) (*models.Owner, error) {
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
	return s.repo.Update(ctx, id, fields)
}

func (s *OwnerService) Delete(ctx context.Context, id uint) (*models.Owner, error) {
	return s.repo.SoftDelete(ctx, id)
}

// Authenticate returns nil for an unknown username and for a wrong password
// alike; callers must not distinguish the two.
func (s *OwnerService) Authenticate(ctx context.Context, username, password string) (*models.Owner, error) {
	owner, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner == nil || auth.CheckPassword(owner.HashedPassword, password) != nil {
		s.lg.Warnw("failed owner authentication", "username", username)
		return nil, nil
	}
	return owner, nil
}

func (s *OwnerService) Token(owner *models.Owner) (string, error) {
	return s.tokens.Sign(owner.Username, auth.RoleOwner, owner.ID)
}
