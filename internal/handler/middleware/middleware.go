package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/pkg/auth"
	"github.com/vinculodevida/lactario/pkg/metrics"
)

const (
	claimsKey    = "authClaims"
	requestIDKey = "requestID"

	requestIDHeader = "X-Request-ID"
)

// RequestID tags every request with an identifier, honoring one supplied
// by an upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func Metrics(mx *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		mx.InFlightGauge.Inc()

		c.Next()

		mx.InFlightGauge.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		mx.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		mx.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// RequireAuth rejects requests without a valid access token. The redirect
// field tells browser clients where to send the user.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtManager)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/login",
			})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, jwtManager); ok {
			c.Set(claimsKey, claims)
		}
		c.Next()
	}
}

// RequireRoles allows only the named roles through. Denied users are
// pointed back at their own landing area.
func RequireRoles(roles ...domain.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication required",
				"redirect": "/login",
			})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "access denied",
			"redirect": claims.Role.Landing(),
		})
	}
}

func ClaimsFrom(c *gin.Context) *domain.Claims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*domain.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerClaims(c *gin.Context, jwtManager *auth.JWTManager) (*domain.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, false
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}
	claims, err := jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
