package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinculodevida/lactario/internal/config"
	"github.com/vinculodevida/lactario/internal/domain"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret!",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "lactario-test",
	}
}

func testClaims() *domain.Claims {
	return &domain.Claims{UserID: 42, Name: "María López", Role: domain.RoleNurse}
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), pair.ExpiresAt, time.Minute)

	claims, err := m.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "María López", claims.Name)
	assert.Equal(t, domain.RoleNurse, claims.Role)

	refreshed, err := m.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), refreshed.UserID)
}

func TestValidate_TokenTypeMismatch(t *testing.T) {
	m := NewJWTManager(testConfig())

	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)

	_, err = m.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenTypeMismatch)
}

func TestValidate_WrongSecret(t *testing.T) {
	m := NewJWTManager(testConfig())
	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Secret = "another-secret-another-secret-another!"
	other := NewJWTManager(otherCfg)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_ExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTokenTTL = -time.Minute
	m := NewJWTManager(cfg)

	pair, err := m.GenerateTokenPair(testClaims())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_Garbage(t *testing.T) {
	m := NewJWTManager(testConfig())

	_, err := m.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
