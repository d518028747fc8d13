package http

import (
	"context"

	"academyhub-backend/internal/domain"
)

type contextKey struct{}

// Principal is the authenticated caller, injected by the auth middleware.
type Principal struct {
	UserID int32
	Email  string
	Role   domain.Role
}

func withPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFrom extracts the authenticated caller from the request context.
// Handlers behind the auth middleware can rely on ok being true.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
