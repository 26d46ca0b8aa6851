package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/model"
	"shopbase/internal/multitenancy"
	"shopbase/internal/repository/memstore"
	"shopbase/pkg/crypto"
)

func newTenantFixture(t *testing.T) (*TenantService, *memstore.Store, context.Context, uint) {
	t.Helper()

	store := memstore.New()
	tenant := &model.Tenant{Name: "Shop One", Subdomain: "shop1", Active: true}
	require.NoError(t, store.Tenants().Create(context.Background(), tenant))

	encryptor, err := crypto.NewEncryptor("0123456789abcdef", "fedcba9876543210")
	require.NoError(t, err)

	ctx := multitenancy.WithTenant(context.Background(), tenant.ID)
	return NewTenantService(store, encryptor), store, ctx, tenant.ID
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateSettingsEncryptsCredentialsAtRest(t *testing.T) {
	tenants, store, ctx, tenantID := newTenantFixture(t)

	settings, err := tenants.UpdateSettings(ctx, tenantID, TenantSettingsUpdate{
		OzonAPIKey:      strPtr("ozon-secret-key"),
		OzonClientID:    strPtr("client-77"),
		OzonSyncEnabled: boolPtr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "ozon-secret-key", settings.OzonAPIKey)
	assert.True(t, settings.OzonSyncEnabled)

	// The stored row never carries the plaintext.
	stored, err := store.Tenants().FindByID(ctx, tenantID)
	require.NoError(t, err)
	assert.NotEqual(t, "ozon-secret-key", stored.OzonAPIKey)
	assert.NotEmpty(t, stored.OzonAPIKey)
	assert.NotEqual(t, "client-77", stored.OzonClientID)
}

func TestUpdateSettingsNilFieldsLeaveValues(t *testing.T) {
	tenants, _, ctx, tenantID := newTenantFixture(t)

	_, err := tenants.UpdateSettings(ctx, tenantID, TenantSettingsUpdate{
		OzonAPIKey: strPtr("ozon-secret-key"),
	})
	require.NoError(t, err)

	settings, err := tenants.UpdateSettings(ctx, tenantID, TenantSettingsUpdate{
		ContactPhone: strPtr("+7 900 000-00-00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ozon-secret-key", settings.OzonAPIKey)
	assert.Equal(t, "+7 900 000-00-00", settings.ContactPhone)

	// Explicit empty string clears the credential.
	settings, err = tenants.UpdateSettings(ctx, tenantID, TenantSettingsUpdate{
		OzonAPIKey: strPtr(""),
	})
	require.NoError(t, err)
	assert.Empty(t, settings.OzonAPIKey)
}

func TestDeactivateTenant(t *testing.T) {
	tenants, store, ctx, tenantID := newTenantFixture(t)

	require.NoError(t, tenants.Deactivate(ctx, tenantID))

	stored, err := store.Tenants().FindByID(ctx, tenantID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}
