package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/services"
)

func AdminLogin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		admin, err := svc.Admins.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		tok, err := svc.Admins.Token(admin)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"access_token": tok, "token_type": "bearer"})
	}
}

func AdminProfile(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		if !p.IsAdmin() {
			unauthorized(w)
			return
		}
		respondJSON(w, p.Admin)
	}
}

// ListAdmins dispatches owner, then admin, then user; the first resolved
// role decides the scope.
func ListAdmins(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		var admins []models.Admin
		var err error
		switch {
		case p.IsOwner():
			admins, err = svc.Admins.GetAll(r.Context())
		case p.IsAdmin():
			admins, err = svc.Admins.GetAllForAdmin(r.Context(), p.Admin)
		case p.IsUser():
			admins, err = svc.Admins.GetAllForUser(r.Context(), p.User)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, admins)
	}
}

func GetAdmin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		p := auth.FromContext(r.Context())
		var admin *models.Admin
		var err error
		switch {
		case p.IsOwner():
			admin, err = svc.Admins.GetByID(r.Context(), id)
		case p.IsAdmin():
			admin, err = svc.Admins.GetByIDForAdmin(r.Context(), id, p.Admin)
		case p.IsUser():
			admin, err = svc.Admins.GetByIDForUser(r.Context(), id, p.User)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}

func CreateAdmin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		var req services.AdminCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username/password required", http.StatusBadRequest)
			return
		}
		admin, err := svc.Admins.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}

func UpdateAdmin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.AdminUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		admin, err := svc.Admins.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}

func DeleteAdmin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		admin, err := svc.Admins.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}

func LinkAdminCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		adminID, ok1 := urlID(r, "id")
		companyID, ok2 := urlID(r, "cid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		admin, err := svc.Admins.AddCompany(r.Context(), adminID, companyID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}

func UnlinkAdminCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		adminID, ok1 := urlID(r, "id")
		companyID, ok2 := urlID(r, "cid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		admin, err := svc.Admins.RemoveCompany(r.Context(), adminID, companyID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if admin == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, admin)
	}
}
