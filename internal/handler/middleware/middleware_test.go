package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func tokenFor(t *testing.T, jm *auth.JWTManager, role domain.RoleName) string {
	t.Helper()
	pair, err := jm.GenerateTokenPair(&domain.Claims{UserID: 1, Name: "Admin", Role: role})
	require.NoError(t, err)
	return pair.AccessToken
}

func guardedRouter(jm *auth.JWTManager, roles ...domain.RoleName) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", RequireAuth(jm), RequireRoles(roles...), func(c *gin.Context) {
		claims := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Name})
	})
	return r
}

func TestRequireAuth_MissingTokenRedirectsToLogin(t *testing.T) {
	r := guardedRouter(testJWTManager(), domain.RoleAdministrator)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authentication required","redirect":"/login"}`, w.Body.String())
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := guardedRouter(testJWTManager(), domain.RoleAdministrator)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_WrongRoleRedirectsToOwnLanding(t *testing.T) {
	jm := testJWTManager()
	r := guardedRouter(jm, domain.RoleAdministrator)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jm, domain.RoleNurse))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"access denied","redirect":"/enfermeras"}`, w.Body.String())
}

func TestRequireRoles_AllowedRolePasses(t *testing.T) {
	jm := testJWTManager()
	r := guardedRouter(jm, domain.RoleAdministrator, domain.RoleNurse)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, jm, domain.RoleNurse))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"Admin"}`, w.Body.String())
}

func TestOptionalAuth_AnonymousPassesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jm := testJWTManager()
	r := gin.New()
	r.GET("/open", OptionalAuth(jm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"anonymous": ClaimsFrom(c) == nil})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	// A supplied id is preserved.
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "upstream-id", w.Body.String())
}
