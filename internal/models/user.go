package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of roles a user can hold. Adding a role requires
// touching the capability table in internal/permissions.
type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleOrgAdmin    Role = "org_admin"
	RoleAdmin       Role = "admin"
	RoleManager     Role = "manager"
	RoleTechnician  Role = "technician"
	RoleOfficeStaff Role = "office_staff"
	RoleClient      Role = "client"
	RoleVendor      Role = "vendor"
)

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSystemAdmin, RoleOrgAdmin, RoleAdmin, RoleManager,
		RoleTechnician, RoleOfficeStaff, RoleClient, RoleVendor:
		return true
	}
	return false
}

// AuthProvider records how an account authenticates.
type AuthProvider string

const (
	AuthProviderLocal AuthProvider = "local"
	AuthProviderOAuth AuthProvider = "oauth"
)

// User is an authenticated principal. Every user belongs to exactly one
// organization. PasswordHash is nil for OAuth-only accounts; ExternalID is
// set once an OAuth identity has been linked and is unique across users.
type User struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Username       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash   *string        `gorm:"type:varchar(255)" json:"-"`
	Role           Role           `gorm:"type:varchar(20);not null;default:'client'" json:"role"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	Active         bool           `gorm:"not null;default:true" json:"active"`
	AuthProvider   AuthProvider   `gorm:"type:varchar(10);not null;default:'local'" json:"auth_provider"`
	ExternalID     *string        `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	PhotoURL       *string        `gorm:"type:varchar(512)" json:"photo_url,omitempty"`
	AccessToken    *string        `gorm:"type:varchar(512)" json:"-"`
	RefreshToken   *string        `gorm:"type:varchar(512)" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
