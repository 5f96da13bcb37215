package http

import (
	"time"

	"github.com/bookline-app/bookline-backend/internal/catalog"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
)

// ListServicesRequest defines query parameters for listing catalog services.
type ListServicesRequest struct {
	request.ListParams
	BusinessID    string `form:"business_id" binding:"omitempty,uuid"`
	Keyword       string `form:"keyword"`
	AvailableOnly bool   `form:"available_only"`
}

// Validate performs custom validation for ListServicesRequest.
func (r *ListServicesRequest) Validate() error {
	return nil
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	BusinessID      string    `json:"business_id"`
	BusinessName    string    `json:"business_name"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ServiceTag is a brief representation of a catalog service.
type ServiceTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		BusinessName:    s.BusinessName,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsAvailable:     s.IsAvailable,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

type CreateServiceRequest struct {
	BusinessID      string  `json:"business_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
}

// Validate performs custom validation for CreateServiceRequest.
func (r *CreateServiceRequest) Validate() error {
	return nil
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	IsAvailable     *bool    `json:"is_available"`
}

// Validate performs custom validation for UpdateServiceRequest.
func (r *UpdateServiceRequest) Validate() error {
	return nil
}
