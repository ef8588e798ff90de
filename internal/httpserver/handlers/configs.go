package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/services"
)

func ListConfigs(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		configs, err := svc.Config.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, configs)
	}
}

func GetConfig(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		cfg, err := svc.Config.GetByKey(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if cfg == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, cfg)
	}
}

func CreateConfig(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		var req services.ConfigCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Key == "" {
			http.Error(w, "key required", http.StatusBadRequest)
			return
		}
		cfg, err := svc.Config.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if cfg == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, cfg)
	}
}

func UpdateConfig(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		var req services.ConfigUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg, err := svc.Config.Update(r.Context(), chi.URLParam(r, "key"), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if cfg == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, cfg)
	}
}

func DeleteConfig(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		cfg, err := svc.Config.Delete(r.Context(), chi.URLParam(r, "key"))
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if cfg == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, cfg)
	}
}
