package multitenancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopbase/internal/apperr"
)

func TestFromContextUnbound(t *testing.T) {
	id, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Zero(t, id)
}

func TestWithTenantBindsAndPropagates(t *testing.T) {
	ctx := WithTenant(context.Background(), 7)

	id, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	// Children derived from the bound context keep the binding.
	child, cancel := context.WithCancel(ctx)
	defer cancel()
	id, ok = FromContext(child)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)
}

func TestRequire(t *testing.T) {
	ctx := WithTenant(context.Background(), 7)

	assert.NoError(t, Require(ctx, 7))
	assert.ErrorIs(t, Require(ctx, 8), apperr.ErrTenantMismatch)
	assert.ErrorIs(t, Require(context.Background(), 7), apperr.ErrNoTenant)
}
