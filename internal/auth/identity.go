package auth

import (
	"context"

	"github.com/tuanvumaihuynh/bizsuite/internal/model"
)

// Identity is the authenticated caller of one request.
type Identity struct {
	UserID    int64
	Email     string
	Role      model.Role
	SessionID string
}

type identityCtxKey struct{}

func NewIdentityContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(Identity)
	return id, ok
}
