package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medibill/internal/auth"
	"medibill/internal/domain"
)

const (
	ContextKeyTenantID  = "tenant_id"
	ContextKeyUserID    = "user_id"
	ContextKeyRole      = "role"
	ContextKeyPatientID = "patient_id"
	ContextKeySession   = "session"
)

// AuthMiddleware opens an auth.Session for the request from the bearer token,
// injects the caller's tenant, user and role, and disposes the session once
// the rest of the chain has run.
func AuthMiddleware(validator auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		session := auth.NewSession(validator)
		if err := session.Initialize(strings.TrimPrefix(authHeader, "Bearer ")); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}
		defer session.Dispose()

		p, _ := session.Principal()
		c.Set(ContextKeySession, session)
		c.Set(ContextKeyTenantID, p.TenantID)
		c.Set(ContextKeyUserID, p.UserID)
		c.Set(ContextKeyRole, string(p.Role))
		c.Set(ContextKeyPatientID, p.PatientID)
		c.Next()
	}
}

// RequireRole returns middleware that checks the user's role against allowed roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr, exists := c.Get(ContextKeyRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "role not found in context"},
			})
			return
		}

		userRole := domain.UserRole(roleStr.(string))
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "FORBIDDEN", "message": "insufficient permissions"},
		})
	}
}

// GetPrincipal returns the caller identity held by the request's session.
func GetPrincipal(c *gin.Context) (domain.Principal, error) {
	val, exists := c.Get(ContextKeySession)
	if !exists {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	session, ok := val.(*auth.Session)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return session.Principal()
}

// GetTenantID extracts the tenant ID from the Gin context.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return val.(uuid.UUID), nil
}

// GetRole extracts the user role string from the Gin context.
func GetRole(c *gin.Context) string {
	val, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	return val.(string)
}
