package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aquatrack/pool-service-api/internal/constants"
	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/permissions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// guardRouter wires the guards behind a stub that plants the given user as
// the principal, skipping the session round trip.
func guardRouter(user *models.User) *gin.Engine {
	r := gin.New()
	plant := func(c *gin.Context) {
		c.Set(constants.ContextKeyPrincipal, user)
		c.Next()
	}

	r.DELETE("/work-orders/:id", plant,
		RequirePermission(permissions.ResourceWorkOrders, permissions.ActionDelete),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/organizations/:org_id", plant,
		RequireOrganizationAccess(),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func do(router *gin.Engine, method, path string) int {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRequirePermission(t *testing.T) {
	manager := &models.User{ID: 1, Role: models.RoleManager, OrganizationID: 1, Active: true}
	require.Equal(t, http.StatusOK, do(guardRouter(manager), http.MethodDelete, "/work-orders/1"))

	technician := &models.User{ID: 2, Role: models.RoleTechnician, OrganizationID: 1, Active: true}
	require.Equal(t, http.StatusForbidden, do(guardRouter(technician), http.MethodDelete, "/work-orders/1"))

	rogue := &models.User{ID: 3, Role: models.Role("superuser"), OrganizationID: 1, Active: true}
	require.Equal(t, http.StatusForbidden, do(guardRouter(rogue), http.MethodDelete, "/work-orders/1"))
}

func TestRequireOrganizationAccess(t *testing.T) {
	manager := &models.User{ID: 1, Role: models.RoleManager, OrganizationID: 7, Active: true}
	r := guardRouter(manager)

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/organizations/7"))
	require.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/organizations/8"))
	require.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/organizations/not-a-number"))

	admin := &models.User{ID: 2, Role: models.RoleSystemAdmin, OrganizationID: 1, Active: true}
	require.Equal(t, http.StatusOK, do(guardRouter(admin), http.MethodGet, "/organizations/8"))
}
