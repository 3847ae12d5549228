package auth

import (
	"context"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

type contextKey string

const authContextKey contextKey = "auth_context"

// ContextWithAuth adds AuthContext to the context.
func ContextWithAuth(ctx context.Context, auth *model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, auth)
}

// AuthFromContext returns the AuthContext, or nil when the request is anonymous.
func AuthFromContext(ctx context.Context) *model.AuthContext {
	auth, _ := ctx.Value(authContextKey).(*model.AuthContext)
	return auth
}

// HostEmailFromContext returns the authenticated host's email, or "".
func HostEmailFromContext(ctx context.Context) string {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.HostEmail
	}
	return ""
}

// KeyIDFromContext returns the authenticated key's ID, or "".
func KeyIDFromContext(ctx context.Context) string {
	if auth := AuthFromContext(ctx); auth != nil {
		return auth.KeyID
	}
	return ""
}
