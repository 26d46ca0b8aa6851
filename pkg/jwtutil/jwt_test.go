package jwtutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	tenantID := uint(42)
	token, err := util.GenerateToken("admin", "shop1:admin", &tenantID, "ROLE_ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "shop1:admin", claims.FullUsername)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, uint(42), *claims.TenantID)
	assert.Equal(t, "ROLE_ADMIN", claims.Role)
}

func TestValidateToken_WrongKey(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "key-one", ExpirationHours: 1})
	other := NewJWTUtil(&JWTConfig{SigningKey: "key-two", ExpirationHours: 1})

	token, err := util.GenerateToken("admin", "", nil, "")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	util := NewJWTUtil(&JWTConfig{SigningKey: "test-signing-key", ExpirationHours: -1})

	token, err := util.GenerateToken("admin", "", nil, "")
	require.NoError(t, err)

	_, err = util.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateToken_NoConfig(t *testing.T) {
	util := &JWTUtil{}
	_, err := util.GenerateToken("admin", "", nil, "")
	assert.Error(t, err)
}
