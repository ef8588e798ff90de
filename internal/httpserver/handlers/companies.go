package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"vmmcore/internal/auth"
	"vmmcore/internal/models"
	"vmmcore/internal/services"
)

func ListCompanies(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := auth.FromContext(r.Context())
		var companies []models.Company
		var err error
		switch {
		case p.IsOwner():
			companies, err = svc.Companies.GetAll(r.Context())
		case p.IsAdmin():
			companies, err = svc.Companies.GetAllForAdmin(r.Context(), p.Admin)
		case p.IsUser():
			var company *models.Company
			company, err = svc.Companies.GetForUser(r.Context(), p.User)
			companies = []models.Company{}
			if company != nil {
				companies = append(companies, *company)
			}
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, companies)
	}
}

func GetCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		p := auth.FromContext(r.Context())
		var company *models.Company
		var err error
		switch {
		case p.IsOwner():
			company, err = svc.Companies.GetByID(r.Context(), id)
		case p.IsAdmin():
			company, err = svc.Companies.GetByIDForAdmin(r.Context(), id, p.Admin)
		case p.IsUser():
			company, err = svc.Companies.GetByIDForUser(r.Context(), id, p.User)
		default:
			unauthorized(w)
			return
		}
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if company == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, company)
	}
}

func CreateCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).IsOwner() {
			unauthorized(w)
			return
		}
		var req services.CompanyCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Username == "" {
			http.Error(w, "username required", http.StatusBadRequest)
			return
		}
		company, err := svc.Companies.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if company == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, company)
	}
}

func UpdateCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
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
		var req services.CompanyUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		company, err := svc.Companies.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if company == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, company)
	}
}

func DeleteCompany(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
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
		company, err := svc.Companies.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if company == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, company)
	}
}
