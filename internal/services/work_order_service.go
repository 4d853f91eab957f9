package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/permissions"
	"github.com/aquatrack/pool-service-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrInvalidTitle      = errors.New("title cannot be empty")
)

// WorkOrderService provides business logic for work order operations.
type WorkOrderService struct {
	orderRepo repository.WorkOrderRepository
}

// NewWorkOrderService creates a new WorkOrderService.
func NewWorkOrderService(orderRepo repository.WorkOrderRepository) *WorkOrderService {
	return &WorkOrderService{
		orderRepo: orderRepo,
	}
}

// CreateWorkOrderInput represents parameters to create a work order.
type CreateWorkOrderInput struct {
	Title        string
	Description  string
	ScheduledFor *time.Time
	TechnicianID *uint64
	// OrganizationID is honored only for system_admin callers. Everyone
	// else writes into their own tenant no matter what the payload says.
	OrganizationID uint64
}

// Create creates a work order on behalf of the principal.
func (s *WorkOrderService) Create(principal *models.User, input CreateWorkOrderInput) (*models.WorkOrder, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidTitle
	}

	organizationID := principal.OrganizationID
	if principal.Role == models.RoleSystemAdmin && input.OrganizationID != 0 {
		organizationID = input.OrganizationID
	}

	order := &models.WorkOrder{
		Title:          input.Title,
		Description:    input.Description,
		Status:         models.WorkOrderStatusOpen,
		ScheduledFor:   input.ScheduledFor,
		TechnicianID:   input.TechnicianID,
		CreatorID:      principal.ID,
		OrganizationID: organizationID,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create work order: %w", err)
	}

	return order, nil
}

// Get retrieves a work order the principal is allowed to see. Cross-tenant
// IDs report not-found rather than forbidden to avoid leaking existence.
func (s *WorkOrderService) Get(principal *models.User, id uint64) (*models.WorkOrder, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	if !permissions.CheckOrganizationAccess(principal, order.OrganizationID) {
		return nil, ErrWorkOrderNotFound
	}

	return order, nil
}

// List retrieves the principal's work orders. Non-system_admin callers are
// always scoped to their own organization.
func (s *WorkOrderService) List(principal *models.User, filter repository.WorkOrderFilter) ([]models.WorkOrder, int64, error) {
	if principal.Role != models.RoleSystemAdmin {
		orgID := principal.OrganizationID
		filter.OrganizationID = &orgID
	}
	return s.orderRepo.List(filter)
}

// UpdateWorkOrderInput represents a partial work order update.
type UpdateWorkOrderInput struct {
	Title        *string
	Description  *string
	Status       *models.WorkOrderStatus
	ScheduledFor *time.Time
	TechnicianID *uint64
}

// Update applies a partial update to a work order within the principal's
// reach.
func (s *WorkOrderService) Update(principal *models.User, id uint64, input UpdateWorkOrderInput) (*models.WorkOrder, error) {
	order, err := s.Get(principal, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidTitle
		}
		order.Title = *input.Title
	}
	if input.Description != nil {
		order.Description = *input.Description
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.ScheduledFor != nil {
		order.ScheduledFor = input.ScheduledFor
	}
	if input.TechnicianID != nil {
		order.TechnicianID = input.TechnicianID
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update work order: %w", err)
	}

	return order, nil
}

// Delete removes a work order within the principal's reach.
func (s *WorkOrderService) Delete(principal *models.User, id uint64) error {
	if _, err := s.Get(principal, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(id)
}
