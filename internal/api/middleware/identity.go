package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, resolved either from a locally
// verified token or from the auth-service.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Fullname string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
