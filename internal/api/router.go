package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	v1 "github.com/memberly/memberly/internal/api/v1"
	"github.com/memberly/memberly/internal/rest/middleware"
)

// Handlers groups the versioned HTTP handlers for DI wiring.
type Handlers struct {
	fx.In

	Invoice *v1.InvoiceHandler
	Plan    *v1.PlanHandler
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.TenantContext())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	group := router.Group("/v1")

	invoices := group.Group("/invoices")
	{
		invoices.POST("/purchase", handlers.Invoice.CreatePurchaseInvoice)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/finalize", handlers.Invoice.FinalizeInvoice)
	}

	plans := group.Group("/plans")
	{
		plans.POST("", handlers.Plan.CreatePlan)
		plans.POST("/batch", handlers.Plan.CreatePlans)
	}

	return router
}
