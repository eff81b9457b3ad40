package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig(expiry time.Duration) *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:            "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry: expiry,
		},
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	mgr := NewJWTManager(testConfig(time.Hour))

	token, err := mgr.GenerateToken("alice", "Alice", 3)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := mgr.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Account)
	assert.Equal(t, "Alice", claims.Username)
	assert.Equal(t, 3, claims.Level)
	assert.Equal(t, "account:alice", claims.Subject)
}

func TestValidateTokenExpired(t *testing.T) {
	mgr := NewJWTManager(testConfig(-time.Minute))

	token, err := mgr.GenerateToken("alice", "Alice", 0)
	require.NoError(t, err)

	_, err = mgr.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	mgr := NewJWTManager(testConfig(time.Hour))
	token, err := mgr.GenerateToken("alice", "Alice", 0)
	require.NoError(t, err)

	other := testConfig(time.Hour)
	other.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	_, err = NewJWTManager(other).ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Bearer "))
}
