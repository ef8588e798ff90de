package services

import (
	"context"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// UserService owns user CRUD plus company-membership visibility for the
// admin and user roles. Admin-gated mutations hard-reject out-of-scope
// targets instead of silently filtering.
type UserService struct {
	repo   *store.Repository[models.User]
	tokens *auth.TokenService
	logs   *LogService
	lg     *zap.SugaredLogger
}

type UserCreate struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	Surname         string `json:"surname"`
	Name            string `json:"name"`
	Middlename      string `json:"middlename"`
	Department      string `json:"department"`
	RemoteWorkplace string `json:"remote_workplace"`
	LocalWorkplace  string `json:"local_workplace"`
	Phone           string `json:"phone"`
	Cellular        string `json:"cellular"`
	Post            string `json:"post"`
	CompanyID       uint   `json:"company_id"`
}

type UserUpdate struct {
	Username        *string `json:"username"`
	Password        *string `json:"password"`
	Surname         *string `json:"surname"`
	Name            *string `json:"name"`
	Middlename      *string `json:"middlename"`
	Department      *string `json:"department"`
	RemoteWorkplace *string `json:"remote_workplace"`
	LocalWorkplace  *string `json:"local_workplace"`
	Phone           *string `json:"phone"`
	Cellular        *string `json:"cellular"`
	Post            *string `json:"post"`
	CompanyID       *uint   `json:"company_id"`
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) GetAllForAdmin(ctx context.Context, current *models.Admin) ([]models.User, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return []models.User{}, nil
	}
	return s.repo.GetAll(ctx, store.ByCompanyIn(scope))
}

func (s *UserService) GetByIDForAdmin(ctx context.Context, id uint, current *models.Admin) (*models.User, error) {
	scope := companyScope(current)
	if len(scope) == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.ByCompanyIn(scope))
}

// GetAllForUser lists company siblings, including the caller.
func (s *UserService) GetAllForUser(ctx context.Context, current *models.User) ([]models.User, error) {
	if current.CompanyID == 0 {
		return []models.User{}, nil
	}
	return s.repo.GetAll(ctx, store.ByCompany(current.CompanyID))
}

func (s *UserService) GetByIDForUser(ctx context.Context, id uint, current *models.User) (*models.User, error) {
	if current.CompanyID == 0 {
		return nil, nil
	}
	return s.repo.GetByID(ctx, id, store.ByCompany(current.CompanyID))
}

func (s *UserService) Create(ctx context.Context, in UserCreate) (*models.User, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Username:        in.Username,
		HashedPassword:  hash,
		Surname:         in.Surname,
		Name:            in.Name,
		Middlename:      in.Middlename,
		Department:      in.Department,
		RemoteWorkplace: in.RemoteWorkplace,
		LocalWorkplace:  in.LocalWorkplace,
		Phone:           in.Phone,
		Cellular:        in.Cellular,
		Post:            in.Post,
		CompanyID:       in.CompanyID,
	}
	created, err := s.repo.Create(ctx, &user)
	if created != nil {
		s.logs.Record(ctx, nil, created)
	}
	return created, err
}

// CreateByAdmin rejects targets whose company is outside the admin's scope.
func (s *UserService) CreateByAdmin(ctx context.Context, in UserCreate, current *models.Admin) (*models.User, error) {
	if in.CompanyID == 0 || !inScope(in.CompanyID, companyScope(current)) {
		s.lg.Warnw("admin create user outside scope", "admin", current.Username, "company_id", in.CompanyID)
		return nil, nil
	}
	return s.Create(ctx, in)
}

func (s *UserService) Update(ctx context.Context, id uint, in UserUpdate) (*models.User, error) {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil || before == nil {
		return nil, err
	}
	fields, err := s.updateFields(in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, fields)
	if updated != nil {
		s.logs.Record(ctx, before, updated)
	}
	return updated, err
}

// UpdateByAdmin requires both the user's current company and the requested
// company to sit inside the admin's scope, so an admin can neither pull a
// user in from a foreign company nor push one out to it.
func (s *UserService) UpdateByAdmin(ctx context.Context, id uint, in UserUpdate, current *models.Admin) (*models.User, error) {
	scope := companyScope(current)
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if user.CompanyID == 0 || !inScope(user.CompanyID, scope) {
		return nil, nil
	}
	if in.CompanyID == nil || *in.CompanyID == 0 || !inScope(*in.CompanyID, scope) {
		return nil, nil
	}
	return s.Update(ctx, id, in)
}

func (s *UserService) Delete(ctx context.Context, id uint) (*models.User, error) {
	deleted, err := s.repo.SoftDelete(ctx, id)
	if deleted != nil {
		s.logs.Record(ctx, deleted, nil)
	}
	return deleted, err
}

func (s *UserService) DeleteByAdmin(ctx context.Context, id uint, current *models.Admin) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	if user.CompanyID == 0 || !inScope(user.CompanyID, companyScope(current)) {
		return nil, nil
	}
	return s.Delete(ctx, id)
}

func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || auth.CheckPassword(user.HashedPassword, password) != nil {
		s.lg.Warnw("failed user authentication", "username", username)
		return nil, nil
	}
	return user, nil
}

func (s *UserService) Token(user *models.User) (string, error) {
	return s.tokens.Sign(user.Username, auth.RoleUser, user.ID)
}

func (s *UserService) updateFields(in UserUpdate) (map[string]any, error) {
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
	if in.RemoteWorkplace != nil {
		fields["remote_workplace"] = *in.RemoteWorkplace
	}
	if in.LocalWorkplace != nil {
		fields["local_workplace"] = *in.LocalWorkplace
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
	if in.CompanyID != nil && *in.CompanyID != 0 {
		fields["company_id"] = *in.CompanyID
	}
	return fields, nil
}

func inScope(id uint, scope []uint) bool {
	for _, s := range scope {
		if s == id {
			return true
		}
	}
	return false
}
