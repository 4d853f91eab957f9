package repository

import (
	"github.com/aquatrack/pool-service-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithOrganization creates a user and their organization within a
	// single transaction (local signup path).
	CreateWithOrganization(user *models.User, org *models.Organization) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email, compared case-insensitively
	FindByEmail(email string) (*models.User, error)

	// FindByExternalID finds a user by their OAuth provider ID
	FindByExternalID(externalID string) (*models.User, error)

	// Update persists changes to an existing user
	Update(user *models.User) error
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindBySlug finds an organization by its slug
	FindBySlug(slug string) (*models.Organization, error)

	// Update updates an organization
	Update(org *models.Organization) error
}

// WorkOrderFilter holds filtering options for listing work orders
type WorkOrderFilter struct {
	OrganizationID *uint64
	Status         *models.WorkOrderStatus
	TechnicianID   *uint64
	Page           int
	PageSize       int
}

// WorkOrderRepository defines the interface for work order data access
type WorkOrderRepository interface {
	// Create creates a new work order
	Create(order *models.WorkOrder) error

	// FindByID finds a work order by ID
	FindByID(id uint64) (*models.WorkOrder, error)

	// List retrieves work orders with filtering and pagination
	List(filter WorkOrderFilter) ([]models.WorkOrder, int64, error)

	// Update updates a work order
	Update(order *models.WorkOrder) error

	// Delete soft deletes a work order
	Delete(id uint64) error
}
