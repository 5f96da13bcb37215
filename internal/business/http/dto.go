package http

import (
	"time"

	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
)

// ListBusinessesRequest defines query parameters for listing businesses.
type ListBusinessesRequest struct {
	request.ListParams
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
}

// Validate performs custom validation for ListBusinessesRequest.
func (r *ListBusinessesRequest) Validate() error {
	return nil
}

// BusinessResponse is the shape of business data returned in API responses.
type BusinessResponse struct {
	ID                string    `json:"id"`
	OwnerUserID       string    `json:"owner_user_id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	OpeningHoursStart string    `json:"opening_hours_start"`
	OpeningHoursEnd   string    `json:"opening_hours_end"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// BusinessTag is a brief representation of a business.
type BusinessTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewBusinessResponse(b *business.Business) BusinessResponse {
	return BusinessResponse{
		ID:                b.ID,
		OwnerUserID:       b.OwnerUserID,
		Name:              b.Name,
		Description:       b.Description,
		Address:           b.Address,
		Phone:             b.Phone,
		OpeningHoursStart: b.OpeningHoursStart,
		OpeningHoursEnd:   b.OpeningHoursEnd,
		IsActive:          b.IsActive,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// CreateBusinessRequest defines the payload for registering a business profile.
type CreateBusinessRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	OpeningHoursStart string `json:"opening_hours_start" binding:"required"`
	OpeningHoursEnd   string `json:"opening_hours_end" binding:"required"`
}

// Validate performs custom validation for CreateBusinessRequest.
func (r *CreateBusinessRequest) Validate() error {
	return nil
}

// UpdateBusinessRequest defines fields allowed to be updated via PATCH.
type UpdateBusinessRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone"`
	OpeningHoursStart *string `json:"opening_hours_start"`
	OpeningHoursEnd   *string `json:"opening_hours_end"`
	IsActive          *bool   `json:"is_active"`
}

// Validate performs custom validation for UpdateBusinessRequest.
func (r *UpdateBusinessRequest) Validate() error {
	return nil
}
