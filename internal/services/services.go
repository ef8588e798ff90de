package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/store"
)

// Services wires every entity service over one DB handle. Constructed once
// per process; each service is stateless between requests.
type Services struct {
	Owners    *OwnerService
	Admins    *AdminService
	Users     *UserService
	Companies *CompanyService
	Config    *ConfigService
	Accounts  *AccountService
	Groups    *GroupService
	VMs       *VMService
	Servers   *ServerService
	Versions  *VersionService
	Logs      *LogService
}

func New(db *gorm.DB, tokens *auth.TokenService, lg *zap.SugaredLogger) *Services {
	links := store.NewLinks(db)
	logs := &LogService{repo: store.NewLogRepo(db), lg: lg}
	return &Services{
		Owners:    &OwnerService{repo: store.NewRepository[models.Owner](db), tokens: tokens, lg: lg},
		Admins:    &AdminService{repo: store.NewRepository[models.Admin](db, "Companies"), links: links, tokens: tokens, logs: logs, lg: lg},
		Users:     &UserService{repo: store.NewRepository[models.User](db), tokens: tokens, logs: logs, lg: lg},
		Companies: &CompanyService{repo: store.NewRepository[models.Company](db), logs: logs, lg: lg},
		Config:    &ConfigService{repo: store.NewConfigRepo(db)},
		Accounts:  &AccountService{repo: store.NewRepository[models.Account](db, "Groups"), lg: lg},
		Groups:    &GroupService{repo: store.NewRepository[models.Group](db), links: links, lg: lg},
		VMs:       &VMService{repo: store.NewRepository[models.VM](db), lg: lg},
		Servers:   &ServerService{repo: store.NewRepository[models.Server](db), db: db, lg: lg},
		Versions:  &VersionService{repo: store.NewRepository[models.Version](db)},
		Logs:      logs,
	}
}

// companyScope extracts the ids of an admin's live companies. An empty scope
// must never widen into "all companies".
func companyScope(admin *models.Admin) []uint {
	ids := make([]uint, 0, len(admin.Companies))
	for _, c := range admin.Companies {
		if !c.Deleted {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
