package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization is the tenant boundary. IsSystemAdmin marks the bootstrap
// tenant that platform operators belong to.
type Organization struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	IsSystemAdmin bool           `gorm:"not null;default:false" json:"is_system_admin"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Users []User `gorm:"foreignKey:OrganizationID" json:"users,omitempty"`
}
