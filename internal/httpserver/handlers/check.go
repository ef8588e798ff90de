package handlers

import (
	"net/http"
	"strings"

	"vmmcore/internal/auth"
)

// CheckToken verifies a bearer token without touching the database and
// echoes the embedded claims. Callers use it to probe token validity.
func CheckToken(tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			unauthorized(w)
			return
		}
		claims, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			unauthorized(w)
			return
		}
		respondJSON(w, map[string]any{
			"sub":  claims.Subject,
			"role": claims.Role,
			"id":   claims.ID,
		})
	}
}
