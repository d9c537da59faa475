package middleware

import (
	"context"

	"github.com/amirhosseinghanipour/taskhub/internal/application/ports"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the verified token claims into the context.
func WithPrincipal(ctx context.Context, claims *ports.AccessClaims) context.Context {
	return context.WithValue(ctx, principalContextKey, claims)
}

// PrincipalFromContext returns the claims set by the auth middleware, or nil.
func PrincipalFromContext(ctx context.Context) *ports.AccessClaims {
	v := ctx.Value(principalContextKey)
	if v == nil {
		return nil
	}
	c, _ := v.(*ports.AccessClaims)
	return c
}
