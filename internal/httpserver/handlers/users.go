package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/services"
)

func UserLogin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		user, err := svc.Users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		tok, err := svc.Users.Token(user)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"access_token": tok, "token_type": "bearer"})
	}
}

func UserProfile(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		if !p.IsUser() {
			unauthorized(w)
			return
		}
		respondJSON(w, p.User)
	}
}

func ListUsers(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		var users []models.User
		var err error
		switch {
		case p.IsOwner():
			users, err = svc.Users.GetAll(r.Context())
		case p.IsAdmin():
			users, err = svc.Users.GetAllForAdmin(r.Context(), p.Admin)
		case p.IsUser():
			users, err = svc.Users.GetAllForUser(r.Context(), p.User)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, users)
	}
}

func GetUser(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		p := auth.FromContext(r.Context())
		var user *models.User
		var err error
		switch {
		case p.IsOwner():
			user, err = svc.Users.GetByID(r.Context(), id)
		case p.IsAdmin():
			user, err = svc.Users.GetByIDForAdmin(r.Context(), id, p.Admin)
		case p.IsUser():
			user, err = svc.Users.GetByIDForUser(r.Context(), id, p.User)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, user)
	}
}

func CreateUser(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.UserCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username/password required", http.StatusBadRequest)
			return
		}
		p := auth.FromContext(r.Context())
		var user *models.User
		var err error
		switch {
		case p.IsOwner():
			user, err = svc.Users.Create(r.Context(), req)
		case p.IsAdmin():
			user, err = svc.Users.CreateByAdmin(r.Context(), req, p.Admin)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, user)
	}
}

func UpdateUser(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p := auth.FromContext(r.Context())
		var user *models.User
		var err error
		switch {
		case p.IsOwner():
			user, err = svc.Users.Update(r.Context(), id, req)
		case p.IsAdmin():
			user, err = svc.Users.UpdateByAdmin(r.Context(), id, req, p.Admin)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, user)
	}
}

func DeleteUser(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		p := auth.FromContext(r.Context())
		var user *models.User
		var err error
		switch {
		case p.IsOwner():
			user, err = svc.Users.Delete(r.Context(), id)
		case p.IsAdmin():
			user, err = svc.Users.DeleteByAdmin(r.Context(), id, p.Admin)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if user == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, user)
	}
}
