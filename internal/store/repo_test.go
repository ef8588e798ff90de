package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vmmcore/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestRepositorySkipsDeletedRows(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Company](db)
	ctx := context.Background()

	alpha, err := repo.Create(ctx, &models.Company{Username: "alpha"})
	require.NoError(t, err)
	require.NotNil(t, alpha)
	beta, err := repo.Create(ctx, &models.Company{Username: "beta"})
	require.NoError(t, err)
	require.NotNil(t, beta)

	gone, err := repo.SoftDelete(ctx, beta.ID)
	require.NoError(t, err)
	require.NotNil(t, gone)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "alpha", all[0].Username)

	fetched, err := repo.GetByID(ctx, beta.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	// The row itself survives the soft delete.
	var count int64
	db.Model(&models.Company{}).Where("id = ?", beta.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRepositoryDuplicateCreateIsAbsence(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Owner](db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Owner{Username: "root", HashedPassword: "x"})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := repo.Create(ctx, &models.Owner{Username: "root", HashedPassword: "y"})
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestRepositoryGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Company](db)
	ctx := context.Background()

	fetched, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	updated, err := repo.Update(ctx, 999, map[string]any{"username": "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := repo.SoftDelete(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestRepositoryUpdateAppliesFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Company](db)
	ctx := context.Background()

	c, err := repo.Create(ctx, &models.Company{Username: "alpha", Description: "old"})
	require.NoError(t, err)
	require.NotNil(t, c)

	updated, err := repo.Update(ctx, c.ID, map[string]any{"description": "new"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "alpha", updated.Username)
}

func TestSoftDeleteIsMonotonic(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Company](db)
	ctx := context.Background()

	c, err := repo.Create(ctx, &models.Company{Username: "alpha"})
	require.NoError(t, err)
	require.NotNil(t, c)

	first, err := repo.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := repo.SoftDelete(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestFilterByCompanyIn(t *testing.T) {
	db := newTestDB(t)
	users := NewRepository[models.User](db)
	ctx := context.Background()

	for i, companyID := range []uint{1, 1, 2, 3} {
		_, err := users.Create(ctx, &models.User{
			Username:       string(rune('a' + i)),
			HashedPassword: "x",
			Surname:        "s",
			Name:           "n",
			CompanyID:      companyID,
		})
		require.NoError(t, err)
	}

	scoped, err := users.GetAll(ctx, ByCompanyIn([]uint{1, 2}))
	require.NoError(t, err)
	assert.Len(t, scoped, 3)

	one, err := users.GetAll(ctx, ByCompany(3))
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestFilterAdminInCompanies(t *testing.T) {
	db := newTestDB(t)
	admins := NewRepository[models.Admin](db, "Companies")
	links := NewLinks(db)
	ctx := context.Background()

	companyA := models.Company{Username: "a"}
	companyB := models.Company{Username: "b"}
	require.NoError(t, db.Create(&companyA).Error)
	require.NoError(t, db.Create(&companyB).Error)

	a1, err := admins.Create(ctx, &models.Admin{Username: "a1", HashedPassword: "x", Surname: "s", Name: "n"})
	require.NoError(t, err)
	a2, err := admins.Create(ctx, &models.Admin{Username: "a2", HashedPassword: "x", Surname: "s", Name: "n"})
	require.NoError(t, err)

	_, err = links.AddCompanyToAdmin(ctx, a1.ID, companyA.ID)
	require.NoError(t, err)
	_, err = links.AddCompanyToAdmin(ctx, a2.ID, companyB.ID)
	require.NoError(t, err)

	inA, err := admins.GetAll(ctx, AdminInCompanies([]uint{companyA.ID}))
	require.NoError(t, err)
	require.Len(t, inA, 1)
	assert.Equal(t, "a1", inA[0].Username)
}
