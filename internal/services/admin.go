package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// AdminService owns admin CRUD plus the company-intersection visibility
// rules for the admin and user roles.
type AdminService struct {
	repo   *store.Repository[models.Admin]
	links  *store.Links
	tokens *auth.TokenService
	logs   *LogService
	lg     *zap.SugaredLogger
}

type AdminCreate struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Surname    string `json:"surname"`
	Name       string `json:"name"`
	Middlename string `json:"middlename"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Cellular   string `json:"cellular"`
	Post       string `json:"post"`
}

type AdminUpdate struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Surname    *string `json:"surname"`
	Name       *string `json:"name"`
	Middlename *string `json:"middlename"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Cellular   *string `json:"cellular"`
	Post       *string `json:"post"`
}

func (s *AdminService) GetAll(ctx context.Context) ([]models.Admin, error) {
	return s.repo.GetAll(ctx)
}

func (s *AdminService) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AdminService) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetAllForAdmin returns admins sharing at least one company with the
// caller. An empty scope yields an empty result, never "all".
func (s *AdminService) GetAllForAdmin(ctx context.Context, current *models.Admin) ([]models.Admin, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return []models.Admin{}, nil
	}
	return s.repo.GetAll(ctx, store.AdminInCompanies(scope))
}

func (s *AdminService) GetByIDForAdmin(ctx context.Context, id uint, current *models.Admin) (*models.Admin, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.AdminInCompanies(scope))
}

// GetAllForUser returns admins whose companies include the user's company.
func (s *AdminService) GetAllForUser(ctx context.Context, current *models.User) ([]models.Admin, error) {
	if current.CompanyID == 0 {
		return []models.Admin{}, nil
	}
	return s.repo.GetAll(ctx, store.AdminInCompanies([]uint{current.CompanyID}))
}

func (s *AdminService) GetByIDForUser(ctx context.Context, id uint, current *models.User) (*models.Admin, error) {
	if current.CompanyID == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.AdminInCompanies([]uint{current.CompanyID}))
}

func (s *AdminService) Create(ctx context.Context, in AdminCreate) (*models.Admin, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	admin := models.Admin{
		Username:       in.Username,
		HashedPassword: hash,
		Surname:        in.Surname,
		Name:           in.Name,
		Middlename:     in.Middlename,
		Department:     in.Department,
		Phone:          in.Phone,
		Cellular:       in.Cellular,
		Post:           in.Post,
	}
	created, err := s.repo.Create(ctx, &admin)
	if created != nil {
		s.logs.Record(ctx, nil, created)
	}
	return created, err
}

func (s *AdminService) Update(ctx context.Context, id uint, in AdminUpdate) (*models.Admin, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil || before == nil {
		return nil, err
	}
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
	updated, err := s.repo.Update(ctx, id, fields)
	if updated != nil {
		s.logs.Record(ctx, before, updated)
	}
	return updated, err
}

func (s *AdminService) Delete(ctx context.Context, id uint) (*models.Admin, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if deleted != nil {
		s.logs.Record(ctx, deleted, nil)
	}
	return deleted, err
}

// AddCompany links an admin to a company. Linking an already-linked pair is
// a no-op nil, not an error.
func (s *AdminService) AddCompany(ctx context.Context, adminID, companyID uint) (*models.Admin, error) {
	return s.links.AddCompanyToAdmin(ctx, adminID, companyID)
}

// RemoveCompany unlinks a pair; removing a missing pair is a no-op nil.
func (s *AdminService) RemoveCompany(ctx context.Context, adminID, companyID uint) (*models.Admin, error) {
	return s.links.RemoveCompanyFromAdmin(ctx, adminID, companyID)
}

func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil || auth.CheckPassword(admin.HashedPassword, password) != nil {
		s.lg.Warnw("failed admin authentication", "username", username)
		return nil, nil
	}
	return admin, nil
}

func (s *AdminService) Token(admin *models.Admin) (string, error) {
	return s.tokens.Sign(admin.Username, auth.RoleAdmin, admin.ID)
}
