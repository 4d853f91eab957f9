package dto

import (
	"github.com/aquatrack/pool-service-api/internal/models"
)

// UserDTO is the public representation of a user.
type UserDTO struct {
	ID             uint64              `json:"id"`
	Username       string              `json:"username"`
	Email          string              `json:"email"`
	Role           models.Role         `json:"role"`
	OrganizationID uint64              `json:"organization_id"`
	Active         bool                `json:"active"`
	AuthProvider   models.AuthProvider `json:"auth_provider"`
	PhotoURL       string              `json:"photo_url,omitempty"`
}

// ToUserDTO converts a user model to its DTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
		Active:         user.Active,
		AuthProvider:   user.AuthProvider,
	}
	if user.PhotoURL != nil {
		dto.PhotoURL = *user.PhotoURL
	}
	return dto
}
