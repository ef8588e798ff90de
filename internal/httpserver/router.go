package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vmmcore/internal/auth"
	"vmmcore/internal/httpserver/handlers"
	"vmmcore/internal/services"
)

func NewRouter(db *gorm.DB, svc *services.Services, tokens *auth.TokenService, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(auth.ResolvePrincipal(db, tokens))

	r.Post("/check", handlers.CheckToken(tokens))

	r.Route("/owner", func(o chi.Router) {
		o.Post("/login", handlers.OwnerLogin(svc, lg))
		o.Get("/profile", handlers.OwnerProfile(svc, lg))
		o.Get("/", handlers.ListOwners(svc, lg))
		o.Get("/{id}", handlers.GetOwner(svc, lg))
		o.Post("/", handlers.CreateOwner(svc, lg))
		o.Put("/{id}", handlers.UpdateOwner(svc, lg))
		o.Delete("/{id}", handlers.DeleteOwner(svc, lg))
	})

	r.Route("/admins", func(a chi.Router) {
		a.Post("/login", handlers.AdminLogin(svc, lg))
		a.Get("/profile", handlers.AdminProfile(svc, lg))
		a.Get("/", handlers.ListAdmins(svc, lg))
		a.Get("/{id}", handlers.GetAdmin(svc, lg))
		a.Post("/", handlers.CreateAdmin(svc, lg))
		a.Put("/{id}", handlers.UpdateAdmin(svc, lg))
		a.Delete("/{id}", handlers.DeleteAdmin(svc, lg))
		a.Post("/{id}/companies/{cid}", handlers.LinkAdminCompany(svc, lg))
		a.Delete("/{id}/companies/{cid}", handlers.UnlinkAdminCompany(svc, lg))
	})

	r.Route("/users", func(u chi.Router) {
		u.Post("/login", handlers.UserLogin(svc, lg))
		u.Get("/profile", handlers.UserProfile(svc, lg))
		u.Get("/", handlers.ListUsers(svc, lg))
		u.Get("/{id}", handlers.GetUser(svc, lg))
		u.Post("/", handlers.CreateUser(svc, lg))
		u.Put("/{id}", handlers.UpdateUser(svc, lg))
		u.Delete("/{id}", handlers.DeleteUser(svc, lg))
	})

	r.Route("/companies", func(c chi.Router) {
		c.Get("/", handlers.ListCompanies(svc, lg))
		c.Get("/{id}", handlers.GetCompany(svc, lg))
		c.Post("/", handlers.CreateCompany(svc, lg))
		c.Put("/{id}", handlers.UpdateCompany(svc, lg))
		c.Delete("/{id}", handlers.DeleteCompany(svc, lg))
	})

	r.Route("/config", func(c chi.Router) {
		c.Get("/", handlers.ListConfigs(svc, lg))
		c.Get("/{key}", handlers.GetConfig(svc, lg))
		c.Post("/", handlers.CreateConfig(svc, lg))
		c.Put("/{key}", handlers.UpdateConfig(svc, lg))
		c.Delete("/{key}", handlers.DeleteConfig(svc, lg))
	})

	// Inventory is owner-only in its entirety.
	r.Group(func(inv chi.Router) {
		inv.Use(auth.RequireOwner)

		inv.Route("/servers", func(s chi.Router) {
			s.Get("/", handlers.ListServers(svc, lg))
			s.Get("/{id}", handlers.GetServer(svc, lg))
			s.Post("/", handlers.CreateServer(svc, lg))
			s.Put("/{id}", handlers.UpdateServer(svc, lg))
			s.Delete("/{id}", handlers.DeleteServer(svc, lg))
		})

		inv.Route("/vms", func(v chi.Router) {
			v.Get("/", handlers.ListVMs(svc, lg))
			v.Get("/{id}", handlers.GetVM(svc, lg))
			v.Post("/", handlers.CreateVM(svc, lg))
			v.Put("/{id}", handlers.UpdateVM(svc, lg))
			v.Delete("/{id}", handlers.DeleteVM(svc, lg))
		})

		inv.Route("/groups", func(g chi.Router) {
			g.Get("/", handlers.ListGroups(svc, lg))
			g.Get("/{id}", handlers.GetGroup(svc, lg))
			g.Post("/", handlers.CreateGroup(svc, lg))
			g.Put("/{id}", handlers.UpdateGroup(svc, lg))
			g.Delete("/{id}", handlers.DeleteGroup(svc, lg))
			g.Post("/{id}/accounts/{aid}", handlers.LinkGroupAccount(svc, lg))
			g.Delete("/{id}/accounts/{aid}", handlers.UnlinkGroupAccount(svc, lg))
			g.Post("/{id}/vms/{vid}", handlers.LinkGroupVM(svc, lg))
			g.Delete("/{id}/vms/{vid}", handlers.UnlinkGroupVM(svc, lg))
		})

		inv.Route("/accounts", func(a chi.Router) {
			a.Get("/", handlers.ListAccounts(svc, lg))
			a.Get("/{id}", handlers.GetAccount(svc, lg))
			a.Post("/", handlers.CreateAccount(svc, lg))
			a.Put("/{id}", handlers.UpdateAccount(svc, lg))
			a.Delete("/{id}", handlers.DeleteAccount(svc, lg))
		})

		inv.Get("/logs", handlers.ListLogs(svc, lg))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
