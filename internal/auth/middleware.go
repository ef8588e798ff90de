package auth

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"vmmcore/internal/models"
)

// ResolvePrincipal verifies the bearer token (when present) and loads the
// matching principal row. Requests without a resolvable principal still reach
// the handler with an empty Principal; each handler rejects uniformly, so a
// bad token and a missing permission look identical to the caller.
func ResolvePrincipal(db *gorm.DB, tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := tokens.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			p := lookup(db, claims)
			if !p.Present() {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireOwner guards owner-exclusive route groups. The rejection body is
// the same one scope failures produce.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).IsOwner() {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func lookup(db *gorm.DB, claims Claims) Principal {
	switch claims.Role {
	case RoleOwner:
		var o models.Owner
		if db.First(&o, "username = ? AND deleted = ?", claims.Subject, false).Error == nil {
			return Principal{Role: RoleOwner, Owner: &o}
		}
	case RoleAdmin:
		var a models.Admin
		err := db.Preload("Companies", "deleted = ?", false).
			First(&a, "username = ? AND deleted = ?", claims.Subject, false).Error
		if err == nil {
			return Principal{Role: RoleAdmin, Admin: &a}
		}
	case RoleUser:
		var u models.User
		if db.First(&u, "username = ? AND deleted = ?", claims.Subject, false).Error == nil {
			return Principal{Role: RoleUser, User: &u}
		}
	}
	return Principal{}
}
