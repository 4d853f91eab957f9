package handlers

import (
	"errors"
	"net/http"

	"github.com/aquatrack/pool-service-api/internal/dto"
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/middleware"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrganizationHandler serves tenant metadata. Writes to organizations are
// administrative and live outside this API.
type OrganizationHandler struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgRepo repository.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{
		orgRepo: orgRepo,
	}
}

// GetOrganization returns the organization the request was authorized
// against by RequireOrganizationAccess.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgID, ok := middleware.AuthorizedOrganizationID(c)
	if !ok {
		apierrors.Forbidden(c, "Organization access required")
		return
	}

	org, err := h.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, "Organization not found")
			return
		}
		apierrors.InternalError(c, "Failed to load organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}
