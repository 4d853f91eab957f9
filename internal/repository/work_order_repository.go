package repository

import (
	"github.com/aquatrack/pool-service-api/internal/database"
	"github.com/aquatrack/pool-service-api/internal/models"
	"gorm.io/gorm"
)

// GormWorkOrderRepository is a GORM implementation of WorkOrderRepository
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new WorkOrderRepository
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// Create creates a new work order
func (r *GormWorkOrderRepository) Create(order *models.WorkOrder) error {
	return r.db.Create(order).Error
}

// FindByID finds a work order by ID
func (r *GormWorkOrderRepository) FindByID(id uint64) (*models.WorkOrder, error) {
	var order models.WorkOrder
	if err := r.db.Preload("Creator").Preload("Technician").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List retrieves work orders with filtering and pagination
func (r *GormWorkOrderRepository) List(filter WorkOrderFilter) ([]models.WorkOrder, int64, error) {
	query := r.db.Model(&models.WorkOrder{})

	if filter.OrganizationID != nil {
		query = query.Where("organization_id = ?", *filter.OrganizationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.TechnicianID != nil {
		query = query.Where("technician_id = ?", *filter.TechnicianID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.WorkOrder
	if err := query.Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// Update updates a work order
func (r *GormWorkOrderRepository) Update(order *models.WorkOrder) error {
	return r.db.Save(order).Error
}

// Delete soft deletes a work order
func (r *GormWorkOrderRepository) Delete(id uint64) error {
	return r.db.Delete(&models.WorkOrder{}, id).Error
}
