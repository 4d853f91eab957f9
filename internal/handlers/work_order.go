package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aquatrack/pool-service-api/internal/dto"
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/middleware"
	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"github.com/aquatrack/pool-service-api/internal/services"
	"github.com/gin-gonic/gin"
)

// WorkOrderHandler coordinates work order HTTP handlers.
type WorkOrderHandler struct {
	orderService *services.WorkOrderService
}

// NewWorkOrderHandler creates a new WorkOrderHandler.
func NewWorkOrderHandler(orderService *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{
		orderService: orderService,
	}
}

// CreateWorkOrder creates a work order in the principal's organization. The
// organization_id field of the payload is honored only for system_admin.
func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	type CreateRequest struct {
		Title          string     `json:"title" binding:"required"`
		Description    string     `json:"description"`
		ScheduledFor   *time.Time `json:"scheduled_for"`
		TechnicianID   *uint64    `json:"technician_id"`
		OrganizationID uint64     `json:"organization_id"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	order, err := h.orderService.Create(user, services.CreateWorkOrderInput{
		Title:          req.Title,
		Description:    req.Description,
		ScheduledFor:   req.ScheduledFor,
		TechnicianID:   req.TechnicianID,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		respondWorkOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkOrderDTO(*order))
}

// ListWorkOrders lists work orders visible to the principal.
func (h *WorkOrderHandler) ListWorkOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	filter := repository.WorkOrderFilter{
		Page:     parseIntQuery(c, "page", 1),
		PageSize: parseIntQuery(c, "page_size", 20),
	}
	if status := c.Query("status"); status != "" {
		s := models.WorkOrderStatus(status)
		filter.Status = &s
	}

	orders, total, err := h.orderService.List(user, filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list work orders")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderListDTO(orders, total))
}

// GetWorkOrder returns a single work order.
func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	user, id, ok := workOrderRequest(c)
	if !ok {
		return
	}

	order, err := h.orderService.Get(user, id)
	if err != nil {
		respondWorkOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderDTO(*order))
}

// UpdateWorkOrder applies a partial update to a work order.
func (h *WorkOrderHandler) UpdateWorkOrder(c *gin.Context) {
	type UpdateRequest struct {
		Title        *string                 `json:"title"`
		Description  *string                 `json:"description"`
		Status       *models.WorkOrderStatus `json:"status"`
		ScheduledFor *time.Time              `json:"scheduled_for"`
		TechnicianID *uint64                 `json:"technician_id"`
	}

	user, id, ok := workOrderRequest(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.orderService.Update(user, id, services.UpdateWorkOrderInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		ScheduledFor: req.ScheduledFor,
		TechnicianID: req.TechnicianID,
	})
	if err != nil {
		respondWorkOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkOrderDTO(*order))
}

// DeleteWorkOrder removes a work order.
func (h *WorkOrderHandler) DeleteWorkOrder(c *gin.Context) {
	user, id, ok := workOrderRequest(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(user, id); err != nil {
		respondWorkOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work order deleted",
	})
}

func workOrderRequest(c *gin.Context) (*models.User, uint64, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return nil, 0, false
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid work order ID")
		return nil, 0, false
	}

	return user, id, true
}

func parseIntQuery(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func respondWorkOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrWorkOrderNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTitle):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
