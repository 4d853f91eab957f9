package middleware

import (
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/permissions"
	"github.com/gin-gonic/gin"
)

// RequirePermission checks the principal's role against the capability
// table. Must run after RequireAuth.
func RequirePermission(resource permissions.Resource, action permissions.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !permissions.Evaluate(user, resource, action) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
