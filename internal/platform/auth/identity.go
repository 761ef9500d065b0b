package auth

import (
	"context"
	"strings"
)

type contextKey string

const identityContextKey contextKey = "github.com/seva-intake/api/internal/platform/auth/identity"

// Identity describes the authenticated operator attached to a request.
type Identity struct {
	UID         string
	DisplayName string
	Role        string
}

// IsAdmin reports whether the identity carries the administrator role.
func (i *Identity) IsAdmin() bool {
	if i == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(i.Role), "admin")
}

// WithIdentity stores the identity on the context for downstream handlers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the identity from context when present.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
