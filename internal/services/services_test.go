package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
)

func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Owner{}, &models.Admin{}, &models.User{}, &models.Company{},
		&models.Account{}, &models.Group{}, &models.VM{}, &models.Server{},
		&models.Config{}, &models.Log{}, &models.Version{},
	))
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return New(db, tokens, zap.NewNop().Sugar()), db
}

func seedCompany(t *testing.T, svc *Services, name string) *models.Company {
	t.Helper()
	c, err := svc.Companies.Create(context.Background(), CompanyCreate{Username: name})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func seedAdmin(t *testing.T, svc *Services, name string, companyIDs ...uint) *models.Admin {
	t.Helper()
	ctx := context.Background()
	a, err := svc.Admins.Create(ctx, AdminCreate{Username: name, Password: "pw", Surname: "s", Name: "n"})
	require.NoError(t, err)
	require.NotNil(t, a)
	for _, cid := range companyIDs {
		linked, err := svc.Admins.AddCompany(ctx, a.ID, cid)
		require.NoError(t, err)
		require.NotNil(t, linked)
	}
	reloaded, err := svc.Admins.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	return reloaded
}

func seedUser(t *testing.T, svc *Services, name string, companyID uint) *models.User {
	t.Helper()
	u, err := svc.Users.Create(context.Background(), UserCreate{
		Username: name, Password: "pw", Surname: "s", Name: "n", CompanyID: companyID,
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func TestAdminSeesOnlyScopedUsers(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")
	c := seedCompany(t, svc, "gamma")
	admin := seedAdmin(t, svc, "adm1", a.ID, b.ID)

	seedUser(t, svc, "u-a", a.ID)
	seedUser(t, svc, "u-b", b.ID)
	outsider := seedUser(t, svc, "u-c", c.ID)

	users, err := svc.Users.GetAllForAdmin(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	got, err := svc.Users.GetByIDForAdmin(ctx, outsider.ID, admin)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdminWithoutCompaniesSeesNothing(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	admin := seedAdmin(t, svc, "adm1")
	victim := seedUser(t, svc, "u-a", a.ID)

	users, err := svc.Users.GetAllForAdmin(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, users)

	companies, err := svc.Companies.GetAllForAdmin(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, companies)

	admins, err := svc.Admins.GetAllForAdmin(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, admins)

	got, err := svc.Users.GetByIDForAdmin(ctx, victim.ID, admin)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdminPeerVisibility(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")
	c := seedCompany(t, svc, "gamma")

	adm1 := seedAdmin(t, svc, "adm1", a.ID, b.ID)
	seedAdmin(t, svc, "adm2", b.ID)
	adm3 := seedAdmin(t, svc, "adm3", c.ID)

	peers, err := svc.Admins.GetAllForAdmin(ctx, adm1)
	require.NoError(t, err)
	names := make([]string, 0, len(peers))
	for _, p := range peers {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"adm1", "adm2"}, names)

	got, err := svc.Admins.GetByIDForAdmin(ctx, adm3.ID, adm1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserVisibility(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")

	me := seedUser(t, svc, "me", a.ID)
	seedUser(t, svc, "sibling", a.ID)
	stranger := seedUser(t, svc, "stranger", b.ID)

	siblings, err := svc.Users.GetAllForUser(ctx, me)
	require.NoError(t, err)
	assert.Len(t, siblings, 2)

	got, err := svc.Users.GetByIDForUser(ctx, stranger.ID, me)
	require.NoError(t, err)
	assert.Nil(t, got)

	own, err := svc.Companies.GetForUser(ctx, me)
	require.NoError(t, err)
	require.NotNil(t, own)
	assert.Equal(t, a.ID, own.ID)

	foreign, err := svc.Companies.GetByIDForUser(ctx, b.ID, me)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestUserSeesAdminsOfOwnCompany(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")

	seedAdmin(t, svc, "adm-a", a.ID)
	admB := seedAdmin(t, svc, "adm-b", b.ID)
	me := seedUser(t, svc, "me", a.ID)

	admins, err := svc.Admins.GetAllForUser(ctx, me)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "adm-a", admins[0].Username)

	got, err := svc.Admins.GetByIDForUser(ctx, admB.ID, me)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAdminCreateUserOutsideScope(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")
	admin := seedAdmin(t, svc, "adm1", a.ID)

	created, err := svc.Users.CreateByAdmin(ctx, UserCreate{
		Username: "intruder", Password: "pw", Surname: "s", Name: "n", CompanyID: b.ID,
	}, admin)
	require.NoError(t, err)
	assert.Nil(t, created)

	all, err := svc.Users.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	ok, err := svc.Users.CreateByAdmin(ctx, UserCreate{
		Username: "local", Password: "pw", Surname: "s", Name: "n", CompanyID: a.ID,
	}, admin)
	require.NoError(t, err)
	assert.NotNil(t, ok)
}

func TestAdminUpdateUserScopeBounds(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")
	c := seedCompany(t, svc, "gamma")
	admin := seedAdmin(t, svc, "adm1", a.ID, b.ID)
	user := seedUser(t, svc, "u1", a.ID)
	outsider := seedUser(t, svc, "u2", c.ID)

	// Moving within scope works.
	moved, err := svc.Users.UpdateByAdmin(ctx, user.ID, UserUpdate{CompanyID: &b.ID}, admin)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, b.ID, moved.CompanyID)

	// Pushing out to a foreign company is rejected without mutation.
	rejected, err := svc.Users.UpdateByAdmin(ctx, user.ID, UserUpdate{CompanyID: &c.ID}, admin)
	require.NoError(t, err)
	assert.Nil(t, rejected)
	still, err := svc.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
	assert.Equal(t, b.ID, still.CompanyID)

	// Pulling in a foreign user is rejected too.
	pulled, err := svc.Users.UpdateByAdmin(ctx, outsider.ID, UserUpdate{CompanyID: &a.ID}, admin)
	require.NoError(t, err)
	assert.Nil(t, pulled)
}

func TestAdminDeleteUserOutsideScope(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	b := seedCompany(t, svc, "beta")
	admin := seedAdmin(t, svc, "adm1", a.ID)
	outsider := seedUser(t, svc, "u1", b.ID)

	deleted, err := svc.Users.DeleteByAdmin(ctx, outsider.ID, admin)
	require.NoError(t, err)
	assert.Nil(t, deleted)

	still, err := svc.Users.GetByID(ctx, outsider.ID)
	require.NoError(t, err)
	assert.NotNil(t, still)
}

func TestDeletedCompanyLeavesScope(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a := seedCompany(t, svc, "alpha")
	admin := seedAdmin(t, svc, "adm1", a.ID)
	seedUser(t, svc, "u1", a.ID)

	users, err := svc.Users.GetAllForAdmin(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = svc.Companies.Delete(ctx, a.ID)
	require.NoError(t, err)

	reloaded, err := svc.Admins.GetByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	users, err = svc.Users.GetAllForAdmin(ctx, reloaded)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuthenticateCollapsesFailureModes(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	owner, err := svc.Owners.Create(ctx, OwnerCreate{Username: "root", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, owner)

	got, err := svc.Owners.Authenticate(ctx, "root", "wrong")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Owners.Authenticate(ctx, "nobody", "pw")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.Owners.Authenticate(ctx, "root", "pw")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMutationsAppendAuditLogs(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	c := seedCompany(t, svc, "alpha")
	desc := "updated"
	_, err := svc.Companies.Update(ctx, c.ID, CompanyUpdate{Description: &desc})
	require.NoError(t, err)
	_, err = svc.Companies.Delete(ctx, c.ID)
	require.NoError(t, err)

	logs, err := svc.Logs.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestServerDeleteCascadesToVMs(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	server, err := svc.Servers.Create(ctx, ServerCreate{Name: "srv1"})
	require.NoError(t, err)
	require.NotNil(t, server)
	_, err = svc.VMs.Create(ctx, VMCreate{Name: "vm1", ServerID: server.ID})
	require.NoError(t, err)
	_, err = svc.VMs.Create(ctx, VMCreate{Name: "vm2", ServerID: server.ID})
	require.NoError(t, err)

	deleted, err := svc.Servers.Delete(ctx, server.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	vms, err := svc.VMs.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, vms)
}

func TestAccountGroupScope(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	g1, err := svc.Groups.Create(ctx, GroupCreate{Name: "dev"})
	require.NoError(t, err)
	g2, err := svc.Groups.Create(ctx, GroupCreate{Name: "ops"})
	require.NoError(t, err)

	acc1, err := svc.Accounts.Create(ctx, AccountCreate{Username: "acc1", Password: "pw"})
	require.NoError(t, err)
	acc2, err := svc.Accounts.Create(ctx, AccountCreate{Username: "acc2", Password: "pw"})
	require.NoError(t, err)
	acc3, err := svc.Accounts.Create(ctx, AccountCreate{Username: "acc3", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Groups.AddAccount(ctx, g1.ID, acc1.ID)
	require.NoError(t, err)
	_, err = svc.Groups.AddAccount(ctx, g1.ID, acc2.ID)
	require.NoError(t, err)
	_, err = svc.Groups.AddAccount(ctx, g2.ID, acc3.ID)
	require.NoError(t, err)

	me, err := svc.Accounts.GetByID(ctx, acc1.ID)
	require.NoError(t, err)
	require.NotNil(t, me)

	peers, err := svc.Accounts.GetAllForAccount(ctx, me)
	require.NoError(t, err)
	assert.Len(t, peers, 2)

	foreign, err := svc.Accounts.GetByIDForAccount(ctx, acc3.ID, me)
	require.NoError(t, err)
	assert.Nil(t, foreign)
}

func TestConfigLifecycle(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	created, err := svc.Config.Create(ctx, ConfigCreate{Key: "maintenance", Value: "off"})
	require.NoError(t, err)
	require.NotNil(t, created)

	dup, err := svc.Config.Create(ctx, ConfigCreate{Key: "maintenance", Value: "on"})
	require.NoError(t, err)
	assert.Nil(t, dup)

	updated, err := svc.Config.Update(ctx, "maintenance", ConfigUpdate{Value: "on"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "on", updated.Value)

	deleted, err := svc.Config.Delete(ctx, "maintenance")
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gone, err := svc.Config.GetByKey(ctx, "maintenance")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
