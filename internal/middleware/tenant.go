package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantHeader is the HTTP header carrying the caller's tenant.
const TenantHeader = "X-Tenant-ID"

// TenantMiddleware creates a Gin middleware handler that resolves the
// tenant from the X-Tenant-ID header. Every ledger route requires it;
// requests without a tenant are rejected before reaching the handlers.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			logger.Warn("Tenant header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": TenantHeader + " header required"})
			return
		}

		// Store the tenant ID in the standard context
		ctxWithTenant := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)

		// Add tenant ID to the logger and store the enriched logger back
		enrichedLogger := logger.With(slog.String("tenant_id", tenantID))
		ctxWithLoggerAndTenant := context.WithValue(ctxWithTenant, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndTenant)

		c.Next()
	}
}
