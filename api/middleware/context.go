package middleware

import (
	"context"

	"github.com/kindbridge/kindbridge-backend/pkg/identity"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxIdentity contextKey = "identity"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// IdentityFromContext returns the verified caller, or nil outside an
// authenticated request.
func IdentityFromContext(ctx context.Context) *identity.Identity {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxIdentity).(*identity.Identity); ok {
		return v
	}
	return nil
}

// WithIdentity injects the verified caller into the context.
func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if id == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ctxIdentity, id)
	return context.WithValue(ctx, ctxUserID, id.ID)
}
