package middleware

import (
	"strconv"

	"github.com/aquatrack/pool-service-api/internal/constants"
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/permissions"
	"github.com/gin-gonic/gin"
)

// RequireOrganizationAccess compares the principal's tenant to the
// organization named in the path. Only system_admin reaches other tenants.
// Must run after RequireAuth.
func RequireOrganizationAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		orgIDStr := c.Param("org_id")
		orgID, err := strconv.ParseUint(orgIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid organization ID")
			c.Abort()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !permissions.CheckOrganizationAccess(user, orgID) {
			apierrors.Forbidden(c, "Organization mismatch")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOrganizationID, orgID)
		c.Next()
	}
}

// AuthorizedOrganizationID retrieves the organization ID the request was
// authorized against by RequireOrganizationAccess.
func AuthorizedOrganizationID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyOrganizationID)
	if !exists {
		return 0, false
	}
	orgID, ok := value.(uint64)
	return orgID, ok
}
