package auth

import (
	"context"

	"vmmcore/internal/models"
)

type ctxKey string

const principalKey ctxKey = "principal"

// Principal is the resolved caller: exactly one of Owner/Admin/User is set
// when Role is non-empty. A zero Principal means unauthenticated.
type Principal struct {
	Role  Role
	Owner *models.Owner
	Admin *models.Admin
	User  *models.User
}

func (p Principal) Present() bool { return p.Role != "" }

func (p Principal) IsOwner() bool { return p.Role == RoleOwner && p.Owner != nil }
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin && p.Admin != nil }
func (p Principal) IsUser() bool  { return p.Role == RoleUser && p.User != nil }

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func FromContext(ctx context.Context) Principal {
	if v, ok := ctx.Value(principalKey).(Principal); ok {
		return v
	}
	return Principal{}
}
