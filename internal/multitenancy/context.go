package multitenancy

import (
	"context"

	"shopbase/internal/apperr"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithTenant returns a context bound to the given tenant id. The binding is
// immutable and request-scoped: it dies with the request context, so there is
// no clear step to forget, and child goroutines that inherit ctx keep the
// scoping automatically.
func WithTenant(ctx context.Context, tenantID uint) context.Context {
	return context.WithValue(ctx, contextKey{}, tenantID)
}

// FromContext retrieves the bound tenant id. Returns 0, false when the
// request is tenant-agnostic.
func FromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(contextKey{}).(uint)
	return id, ok
}

// Require verifies that ctx is bound to exactly tenantID. Services call this
// as a defense-in-depth check before touching tenant-scoped storage: an
// unbound context fails closed, a mismatched one is rejected outright.
func Require(ctx context.Context, tenantID uint) error {
	bound, ok := FromContext(ctx)
	if !ok {
		return apperr.ErrNoTenant
	}
	if bound != tenantID {
		return apperr.ErrTenantMismatch
	}
	return nil
}
