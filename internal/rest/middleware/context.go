package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/memberly/memberly/internal/types"
)

// RequestID attaches a unique id to every request context for log
// correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = types.GenerateUUID()
		}
		ctx := c.Request.Context()
		ctx = types.SetRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// TenantContext copies the tenant and user headers into the request context
// so the audit columns of every written row are populated.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			tenantID = types.DefaultTenantID
		}
		ctx = types.SetTenantID(ctx, tenantID)

		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = types.DefaultUserID
		}
		ctx = types.SetUserID(ctx, userID)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
