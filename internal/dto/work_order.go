package dto

import (
	"time"

	"github.com/aquatrack/pool-service-api/internal/models"
)

// WorkOrderDTO is the public representation of a work order.
type WorkOrderDTO struct {
	ID             uint64                 `json:"id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Status         models.WorkOrderStatus `json:"status"`
	ScheduledFor   *time.Time             `json:"scheduled_for,omitempty"`
	TechnicianID   *uint64                `json:"technician_id,omitempty"`
	CreatorID      uint64                 `json:"creator_id"`
	OrganizationID uint64                 `json:"organization_id"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToWorkOrderDTO converts a work order model to its DTO
func ToWorkOrderDTO(order models.WorkOrder) WorkOrderDTO {
	return WorkOrderDTO{
		ID:             order.ID,
		Title:          order.Title,
		Description:    order.Description,
		Status:         order.Status,
		ScheduledFor:   order.ScheduledFor,
		TechnicianID:   order.TechnicianID,
		CreatorID:      order.CreatorID,
		OrganizationID: order.OrganizationID,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// WorkOrderListDTO wraps a page of work orders.
type WorkOrderListDTO struct {
	WorkOrders []WorkOrderDTO `json:"work_orders"`
	Total      int64          `json:"total"`
}

// ToWorkOrderListDTO converts a page of work orders to its DTO
func ToWorkOrderListDTO(orders []models.WorkOrder, total int64) WorkOrderListDTO {
	dtos := make([]WorkOrderDTO, len(orders))
	for i, order := range orders {
		dtos[i] = ToWorkOrderDTO(order)
	}
	return WorkOrderListDTO{
		WorkOrders: dtos,
		Total:      total,
	}
}
