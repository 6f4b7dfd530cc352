package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dzhngzturi/qr-menu-management-admin/internal/api"
	"github.com/dzhngzturi/qr-menu-management-admin/internal/tenant"
)

// NavigationPath records the request path on the request context, where
// the tenant resolver reads the current restaurant from.
func NavigationPath() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tenant.WithPath(c.Request.Context(), c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequestID echoes the caller's X-Request-Id or assigns a new one. The id
// also goes on the request context so API calls made for this request
// carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(api.WithRequestID(c.Request.Context(), id))
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
