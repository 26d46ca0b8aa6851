package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopbase/internal/apperr"
	"shopbase/internal/repository/memstore"
	"shopbase/pkg/config"
	"shopbase/pkg/jwtutil"
)

func newAuthFixture(t *testing.T) (*AuthService, *memstore.Store, *jwtutil.JWTUtil) {
	t.Helper()

	store := memstore.New()
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	tenantConf := &config.TenantConfig{RootDomain: "diploma.ru", UsernameSeparator: ":"}
	return NewAuthService(store, jwtUtil, tenantConf), store, jwtUtil
}

func registerShop(t *testing.T, auth *AuthService) *RegisterResult {
	t.Helper()
	result, err := auth.Register(context.Background(), RegisterRequest{
		ShopName:  "Shop One",
		Subdomain: "shop1",
		Username:  "admin",
		Password:  "secret123",
		Email:     "admin@example.com",
		FirstName: "Anna",
	})
	require.NoError(t, err)
	return result
}

func TestRegisterProvisionsTenantAndAdmin(t *testing.T) {
	auth, store, jwtUtil := newAuthFixture(t)

	result := registerShop(t, auth)
	assert.Equal(t, "shop1", result.Tenant.Subdomain)
	assert.True(t, result.Tenant.Active)
	assert.Equal(t, "https://shop1.diploma.ru", result.LoginURL)

	claims, err := jwtUtil.ValidateToken(result.Token)
	require.NoError(t, err)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, result.Tenant.ID, *claims.TenantID)
	assert.Equal(t, "shop1:admin", claims.FullUsername)

	admin, err := store.TenantUsers().FindByTenantAndUsername(context.Background(), result.Tenant.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "ROLE_ADMIN", admin.Role)
	assert.NotEqual(t, "secret123", admin.PasswordHash)
}

func TestRegisterNormalizesSubdomain(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	result, err := auth.Register(context.Background(), RegisterRequest{
		ShopName:  "Shop Two",
		Subdomain: "  SHOP2  ",
		Username:  "owner",
		Password:  "secret123",
		Email:     "owner@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "shop2", result.Tenant.Subdomain)
}

func TestRegisterRejectsInvalidSubdomain(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	for _, sub := range []string{"", "-shop", "shop-", "sh_op", "sh.op", "shop!"} {
		_, err := auth.Register(context.Background(), RegisterRequest{
			ShopName:  "Shop",
			Subdomain: sub,
			Username:  "owner",
			Password:  "secret123",
			Email:     "owner@example.com",
		})
		assert.True(t, apperr.IsInvalidRequest(err), "subdomain %q should be rejected", sub)
	}
}

func TestRegisterUniquenessChecks(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	registerShop(t, auth)

	cases := []struct {
		name string
		req  RegisterRequest
	}{
		{"duplicate shop name", RegisterRequest{ShopName: "Shop One", Subdomain: "other", Username: "u1", Password: "secret123", Email: "u1@example.com"}},
		{"duplicate subdomain", RegisterRequest{ShopName: "Other", Subdomain: "shop1", Username: "u2", Password: "secret123", Email: "u2@example.com"}},
		{"duplicate username", RegisterRequest{ShopName: "Other", Subdomain: "other", Username: "admin", Password: "secret123", Email: "u3@example.com"}},
		{"duplicate email", RegisterRequest{ShopName: "Other", Subdomain: "other", Username: "u4", Password: "secret123", Email: "admin@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := auth.Register(context.Background(), tc.req)
			assert.True(t, apperr.IsConflict(err))
		})
	}
}

func TestLoginWithCompoundUsername(t *testing.T) {
	auth, _, jwtUtil := newAuthFixture(t)
	registered := registerShop(t, auth)

	result, err := auth.Login(context.Background(), LoginRequest{Username: "shop1:admin", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.Tenant.ID, result.TenantID)

	claims, err := jwtUtil.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "shop1:admin", claims.FullUsername)
}

func TestLoginWithPlainUsernameFallback(t *testing.T) {
	auth, _, _ := newAuthFixture(t)
	registered := registerShop(t, auth)

	result, err := auth.Login(context.Background(), LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.Tenant.ID, result.TenantID)
}

func TestLoginFailures(t *testing.T) {
	auth, store, _ := newAuthFixture(t)
	registered := registerShop(t, auth)

	_, err := auth.Login(context.Background(), LoginRequest{Username: "shop1:admin", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = auth.Login(context.Background(), LoginRequest{Username: "ghost:admin", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = auth.Login(context.Background(), LoginRequest{Username: "shop1:nobody", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	// Disabled account.
	account, err := store.TenantUsers().FindByTenantAndUsername(context.Background(), registered.Tenant.ID, "admin")
	require.NoError(t, err)
	account.Active = false
	require.NoError(t, store.TenantUsers().Update(context.Background(), account))
	_, err = auth.Login(context.Background(), LoginRequest{Username: "shop1:admin", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrUserDisabled)
}

func TestLoginRefusedForInactiveTenant(t *testing.T) {
	auth, store, _ := newAuthFixture(t)
	registered := registerShop(t, auth)

	tenant, err := store.Tenants().FindByID(context.Background(), registered.Tenant.ID)
	require.NoError(t, err)
	tenant.Active = false
	require.NoError(t, store.Tenants().Update(context.Background(), tenant))

	_, err = auth.Login(context.Background(), LoginRequest{Username: "shop1:admin", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrTenantInactive)
}
