package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkOrderStatus string

const (
	WorkOrderStatusOpen      WorkOrderStatus = "OPEN"
	WorkOrderStatusScheduled WorkOrderStatus = "SCHEDULED"
	WorkOrderStatusCompleted WorkOrderStatus = "COMPLETED"
	WorkOrderStatusCancelled WorkOrderStatus = "CANCELLED"
)

// WorkOrder is a service job (cleaning, repair, inspection) scoped to one
// organization.
type WorkOrder struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Status         WorkOrderStatus `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	ScheduledFor   *time.Time      `json:"scheduled_for"`
	TechnicianID   *uint64         `json:"technician_id"`
	CreatorID      uint64          `gorm:"not null" json:"creator_id"`
	OrganizationID uint64          `gorm:"not null;index" json:"organization_id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relations
	Creator      User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Technician   *User        `gorm:"foreignKey:TechnicianID" json:"technician,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
