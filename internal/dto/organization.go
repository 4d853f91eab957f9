package dto

import (
	"github.com/aquatrack/pool-service-api/internal/models"
)

// OrganizationDTO is the public representation of an organization.
type OrganizationDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ToOrganizationDTO converts an organization model to its DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:   org.ID,
		Name: org.Name,
		Slug: org.Slug,
	}
}
