package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "medibill/docs"
	"medibill/internal/auth"
	"medibill/internal/domain"
	"medibill/internal/handler"
	"medibill/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	validator auth.TokenValidator,
	billingH *handler.BillingHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Billing routes - require a valid session
	billing := v1.Group("/billing")
	billing.Use(middleware.AuthMiddleware(validator))
	billing.Use(middleware.PatientGuard())

	viewers := middleware.RequireRole(
		domain.RoleSuperAdmin, domain.RoleClinicAdmin, domain.RoleBillingStaff, domain.RolePatient,
	)
	staff := middleware.RequireRole(
		domain.RoleSuperAdmin, domain.RoleClinicAdmin, domain.RoleBillingStaff,
	)

	invoices := billing.Group("/invoices")
	invoices.GET("", viewers, billingH.ListInvoices)
	invoices.POST("/refresh", viewers, billingH.Refresh)
	invoices.GET("/export.csv", staff, billingH.ExportCSV)
	invoices.GET("/:id", viewers, billingH.GetInvoice)
	invoices.GET("/:id/export", viewers, billingH.ExportInvoice)

	billing.GET("/stats", staff, billingH.GetStats)
	billing.GET("/clinics", staff, billingH.ListClinics)

	return r
}
