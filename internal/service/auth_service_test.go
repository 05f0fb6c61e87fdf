package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vinculodevida/lactario/internal/config"
	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/pkg/auth"
)

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret!",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "lactario-test",
	})
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.MinCost)
	require.NoError(t, err)
	users.seed("Admin", "555-0000", string(hash), domain.RoleAdministrator)
	return NewAuthService(users, testJWTManager(), zap.NewNop()), users
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, claims, err := svc.Login(context.Background(), "Admin", "12345")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, domain.RoleAdministrator, claims.Role)
	assert.Equal(t, "/administrador", claims.Role.Landing())
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "Nadie", "12345"},
		{"wrong password", "Admin", "wrong"},
		{"empty username", "", "12345"},
		{"empty password", "Admin", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	jm := testJWTManager()

	pair, _, err := svc.Login(context.Background(), "Admin", "12345")
	require.NoError(t, err)

	claims, err := jm.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, domain.RoleAdministrator, claims.Role)

	// A refresh token does not pass access validation.
	_, err = jm.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrTokenTypeMismatch)
}

func TestRefreshToken_IssuesNewPair(t *testing.T) {
	svc, _ := newAuthFixture(t)

	pair, _, err := svc.Login(context.Background(), "Admin", "12345")
	require.NoError(t, err)

	renewed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestRefreshToken_RejectsDeletedUser(t *testing.T) {
	svc, users := newAuthFixture(t)

	pair, _, err := svc.Login(context.Background(), "Admin", "12345")
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), 1))

	_, err = svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
