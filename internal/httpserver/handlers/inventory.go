package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"vmmcore/internal/services"
)

// Inventory routes (servers, vms, groups, accounts) are mounted behind
// auth.RequireOwner, so handlers here skip per-request role checks.

func ListServers(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		servers, err := svc.Servers.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, servers)
	}
}

func GetServer(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		server, err := svc.Servers.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if server == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, server)
	}
}

func CreateServer(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.ServerCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		server, err := svc.Servers.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if server == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, server)
	}
}

func UpdateServer(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.ServerUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		server, err := svc.Servers.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if server == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, server)
	}
}

// DeleteServer also soft-deletes the vms the server hosts.
func DeleteServer(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		server, err := svc.Servers.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if server == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, server)
	}
}

func ListVMs(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vms, err := svc.VMs.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, vms)
	}
}

func GetVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		vm, err := svc.VMs.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if vm == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, vm)
	}
}

func CreateVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.VMCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.ServerID == 0 {
			http.Error(w, "server_id required", http.StatusBadRequest)
			return
		}
		vm, err := svc.VMs.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if vm == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, vm)
	}
}

func UpdateVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.VMUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		vm, err := svc.VMs.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if vm == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, vm)
	}
}

func DeleteVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		vm, err := svc.VMs.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if vm == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, vm)
	}
}

func ListGroups(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.Groups.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, groups)
	}
}

func GetGroup(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func CreateGroup(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.GroupCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		group, err := svc.Groups.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func UpdateGroup(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.GroupUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		group, err := svc.Groups.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func DeleteGroup(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func LinkGroupAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, ok1 := urlID(r, "id")
		accountID, ok2 := urlID(r, "aid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.AddAccount(r.Context(), groupID, accountID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func UnlinkGroupAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, ok1 := urlID(r, "id")
		accountID, ok2 := urlID(r, "aid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.RemoveAccount(r.Context(), groupID, accountID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func LinkGroupVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, ok1 := urlID(r, "id")
		vmID, ok2 := urlID(r, "vid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.AddVM(r.Context(), groupID, vmID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func UnlinkGroupVM(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID, ok1 := urlID(r, "id")
		vmID, ok2 := urlID(r, "vid")
		if !ok1 || !ok2 {
			unauthorized(w)
			return
		}
		group, err := svc.Groups.RemoveVM(r.Context(), groupID, vmID)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if group == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, group)
	}
}

func ListAccounts(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.Accounts.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, accounts)
	}
}

func GetAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		account, err := svc.Accounts.GetByID(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if account == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, account)
	}
}

func CreateAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.AccountCreate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username/password required", http.StatusBadRequest)
			return
		}
		account, err := svc.Accounts.Create(r.Context(), req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if account == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, account)
	}
}

func UpdateAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		var req services.AccountUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		account, err := svc.Accounts.Update(r.Context(), id, req)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if account == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, account)
	}
}

func DeleteAccount(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := urlID(r, "id")
		if !ok {
			unauthorized(w)
			return
		}
		account, err := svc.Accounts.Delete(r.Context(), id)
		if err != nil {
			serverError(w, lg, err)
			return
		}
		if account == nil {
			unauthorized(w)
			return
		}
		respondJSON(w, account)
	}
}

func ListLogs(svc *services.Services, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := svc.Logs.GetAll(r.Context())
		if err != nil {
			serverError(w, lg, err)
			return
		}
		respondJSON(w, logs)
	}
}
