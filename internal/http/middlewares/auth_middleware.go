package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jobtrackhq/jobtrack/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt        TokenVerifier
	demoUserID string
}

func NewAuthMiddleware(jwt TokenVerifier, demoUserID string) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, demoUserID: demoUserID}
}

const (
	ctxUserIDKey = "auth.userID"
	ctxNameKey   = "auth.name"
	ctxIsDemoKey = "auth.isDemo"
)

// RequireAuth rejects requests without a valid bearer token. Missing header,
// malformed header and bad token are deliberately indistinguishable to the
// caller.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "Not authorized to access this route",
			})
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "Not authorized to access this route",
			})
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"msg": "Not authorized to access this route",
			})
			return
		}

		// Stash the identity on the gin context, and mirror the user id onto
		// the request context for the layers below the handlers.
		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxNameKey, claims.Name)
		c.Set(ctxIsDemoKey, m.demoUserID != "" && claims.UserID == m.demoUserID)

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), KeyUserID, claims.UserID))

		c.Next()
	}
}

// Helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func NameFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxNameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

func IsDemoFromContext(c *gin.Context) bool {
	v, ok := c.Get(ctxIsDemoKey)
	if !ok {
		return false
	}
	isDemo, ok := v.(bool)
	return ok && isDemo
}
