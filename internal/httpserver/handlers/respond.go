package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// unauthorized is the single rejection shape for every missing-principal,
// out-of-scope, and absent-target outcome. Keeping the body identical
// prevents resource enumeration.
func unauthorized(w http.ResponseWriter) {
	http.Error(w, "invalid token", http.StatusUnauthorized)
}

func serverError(w http.ResponseWriter, lg *zap.SugaredLogger, err error) {
	lg.Errorw("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func urlID(r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
