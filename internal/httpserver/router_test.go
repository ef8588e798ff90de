package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/services"
)

type testEnv struct {
	handler http.Handler
	svc     *services.Services
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
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
	lg := zap.NewNop().Sugar()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	svc := services.New(db, tokens, lg)
	return &testEnv{handler: NewRouter(db, svc, tokens, lg), svc: svc, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, path, username, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, path, "", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "bearer", out.TokenType)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func (e *testEnv) seedOwner(t *testing.T) string {
	t.Helper()
	owner, err := e.svc.Owners.Create(context.Background(), services.OwnerCreate{Username: "root", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, owner)
	return e.login(t, "/owner/login", "root", "pw")
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Owners.Create(context.Background(), services.OwnerCreate{Username: "root", Password: "pw"})
	require.NoError(t, err)

	wrongPassword := env.do(t, http.MethodPost, "/owner/login", "", map[string]string{
		"username": "root", "password": "nope",
	})
	unknownUser := env.do(t, http.MethodPost, "/owner/login", "", map[string]string{
		"username": "ghost", "password": "pw",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/companies", "/users", "/admins", "/servers", "/logs"} {
		rec := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestOwnerEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	ownerTok := env.seedOwner(t)

	rec := env.do(t, http.MethodPost, "/companies", ownerTok, map[string]string{"username": "acme"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var company models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &company))

	rec = env.do(t, http.MethodPost, "/admins", ownerTok, map[string]string{
		"username": "adm1", "password": "pw", "surname": "s", "name": "n",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var admin models.Admin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &admin))

	rec = env.do(t, http.MethodPost, fmt.Sprintf("/admins/%d/companies/%d", admin.ID, company.ID), ownerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	adminTok := env.login(t, "/admins/login", "adm1", "pw")

	rec = env.do(t, http.MethodPost, "/users", adminTok, map[string]any{
		"username": "u1", "password": "pw", "surname": "s", "name": "n", "company_id": company.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/companies", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var companies []models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &companies))
	assert.Len(t, companies, 1)
}

func TestAdminCannotCreateUserOutsideScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedOwner(t)

	scoped, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "acme"})
	require.NoError(t, err)
	foreign, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "other"})
	require.NoError(t, err)
	admin, err := env.svc.Admins.Create(ctx, services.AdminCreate{Username: "adm1", Password: "pw", Surname: "s", Name: "n"})
	require.NoError(t, err)
	_, err = env.svc.Admins.AddCompany(ctx, admin.ID, scoped.ID)
	require.NoError(t, err)

	adminTok := env.login(t, "/admins/login", "adm1", "pw")
	rec := env.do(t, http.MethodPost, "/users", adminTok, map[string]any{
		"username": "intruder", "password": "pw", "surname": "s", "name": "n", "company_id": foreign.ID,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserCannotFetchForeignCompany(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	mine, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "mine"})
	require.NoError(t, err)
	foreign, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "foreign"})
	require.NoError(t, err)
	_, err = env.svc.Users.Create(ctx, services.UserCreate{
		Username: "u1", Password: "pw", Surname: "s", Name: "n", CompanyID: mine.ID,
	})
	require.NoError(t, err)

	userTok := env.login(t, "/users/login", "u1", "pw")

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/companies/%d", mine.ID), userTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/companies/%d", foreign.ID), userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	missing := env.do(t, http.MethodGet, "/companies/999", userTok, nil)
	assert.Equal(t, missing.Body.String(), rec.Body.String())
}

func TestInventoryIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ownerTok := env.seedOwner(t)

	company, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "acme"})
	require.NoError(t, err)
	admin, err := env.svc.Admins.Create(ctx, services.AdminCreate{Username: "adm1", Password: "pw", Surname: "s", Name: "n"})
	require.NoError(t, err)
	_, err = env.svc.Admins.AddCompany(ctx, admin.ID, company.ID)
	require.NoError(t, err)
	adminTok := env.login(t, "/admins/login", "adm1", "pw")

	for _, path := range []string{"/servers", "/vms", "/groups", "/accounts", "/logs"} {
		rec := env.do(t, http.MethodGet, path, adminTok, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec = env.do(t, http.MethodGet, path, ownerTok, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestCheckToken(t *testing.T) {
	env := newTestEnv(t)
	ownerTok := env.seedOwner(t)

	rec := env.do(t, http.MethodPost, "/check", ownerTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
	assert.Equal(t, "root", claims["sub"])
	assert.Equal(t, "owner", claims["role"])

	rec = env.do(t, http.MethodPost, "/check", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeletedPrincipalLosesAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	company, err := env.svc.Companies.Create(ctx, services.CompanyCreate{Username: "acme"})
	require.NoError(t, err)
	user, err := env.svc.Users.Create(ctx, services.UserCreate{
		Username: "u1", Password: "pw", Surname: "s", Name: "n", CompanyID: company.ID,
	})
	require.NoError(t, err)

	userTok := env.login(t, "/users/login", "u1", "pw")
	rec := env.do(t, http.MethodGet, "/users/profile", userTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err = env.svc.Users.Delete(ctx, user.ID)
	require.NoError(t, err)

	rec = env.do(t, http.MethodGet, "/users/profile", userTok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
