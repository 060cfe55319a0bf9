package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medibill/internal/domain"
)

// PatientGuard rejects patient sessions that carry no patient_id claim, since
// such a session cannot be narrowed to the patient's own invoices.
// It relies on AuthMiddleware having already run.
func PatientGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if domain.UserRole(GetRole(c)) != domain.RolePatient {
			c.Next()
			return
		}
		if c.GetString(ContextKeyPatientID) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "patient context required"},
			})
			return
		}
		c.Next()
	}
}
