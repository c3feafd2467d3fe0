package http

import (
	"context"

	"rentby-escrow/internal/domain"
)

type callerKey struct{}

func withCaller(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, callerKey{}, id)
}

// CallerFromContext returns the identity the auth middleware verified for
// this request.
func CallerFromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(callerKey{}).(domain.Identity)
	return id, ok
}
