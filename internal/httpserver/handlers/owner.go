package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/services"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func OwnerLogin(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		owner, err := svc.Owners.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if owner == nil {
			unauthorized(w)
			return
		}
		tok, err := svc.Owners.Token(owner)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"access_token": tok, "token_type": "bearer"})
	}
}

func OwnerProfile(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		if !p.IsOwner() {
			unauthorized(w)
			return
		}
		respondJSON(w, p.Owner)
	}
}

func ListOwners(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		owners, err := svc.Owners.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, owners)
	}
}

func GetOwner(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
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
		owner, err := svc.Owners.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if owner == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, owner)
	}
}

func CreateOwner(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		var req services.OwnerCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username/password required", http.StatusBadRequest)
			return
		}
		owner, err := svc.Owners.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if owner == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, owner)
	}
}

func UpdateOwner(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
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
		var req services.OwnerUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		owner, err := svc.Owners.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if owner == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, owner)
	}
}

func DeleteOwner(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
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
		owner, err := svc.Owners.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if owner == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, owner)
	}
}
