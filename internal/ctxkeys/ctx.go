package ctxkeys

import (
	"context"

	"github.com/wellpath/portal/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// Identity returns the authenticated caller, or nil outside RequireAuth.
func Identity(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(IdentityKey).(*model.Identity)
	return identity
}

func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
