package http

import (
	"time"

	"github.com/bookline-app/bookline-backend/internal/booking"
	bizHttp "github.com/bookline-app/bookline-backend/internal/business/http"
	catHttp "github.com/bookline-app/bookline-backend/internal/catalog/http"
	"github.com/bookline-app/bookline-backend/internal/pkg/request"
	userHttp "github.com/bookline-app/bookline-backend/internal/user/http"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	BusinessID    string     `form:"business_id" binding:"omitempty,uuid"`
	CustomerID    string     `form:"customer_id" binding:"omitempty,uuid"`
	ServiceID     string     `form:"service_id" binding:"omitempty,uuid"`
	Status        string     `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	StartTimeFrom *time.Time `form:"start_time_from" time_format:"2006-01-02T15:04:05Z07:00"`
	StartTimeTo   *time.Time `form:"start_time_to" time_format:"2006-01-02T15:04:05Z07:00"`
	SortBy        string     `form:"sort_by" binding:"omitempty,oneof=start_time end_time created_at status"`
}

// Validate performs custom validation for ListBookingsRequest.
func (r *ListBookingsRequest) Validate() error {
	if r.StartTimeFrom != nil && r.StartTimeTo != nil {
		if r.StartTimeFrom.After(*r.StartTimeTo) {
			return booking.ErrInvalidDate
		}
	}
	return nil
}

type BookingResponse struct {
	ID          string              `json:"id"`
	Service     catHttp.ServiceTag  `json:"service"`
	Customer    userHttp.UserTag    `json:"customer"`
	Business    bizHttp.BusinessTag `json:"business"`
	Date        string              `json:"date"`
	StartTime   time.Time           `json:"start_time"`
	EndTime     time.Time           `json:"end_time"`
	Status      string              `json:"status"`
	Notes       *string             `json:"notes"`
	TotalAmount float64             `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Service:     catHttp.ServiceTag{ID: b.ServiceID, Name: b.ServiceName},
		Customer:    userHttp.UserTag{ID: b.CustomerID, Name: b.CustomerName},
		Business:    bizHttp.BusinessTag{ID: b.BusinessID, Name: b.BusinessName},
		Date:        b.Date.Format("2006-01-02"),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		Notes:       b.Notes,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type CreateBookingRequest struct {
	BusinessID string    `json:"business_id" binding:"required,uuid"`
	ServiceID  string    `json:"service_id" binding:"required,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	Notes      *string   `json:"notes"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	return nil
}

// ValidateSlotRequest checks a candidate slot without creating anything.
type ValidateSlotRequest struct {
	BusinessID string    `json:"business_id" binding:"required,uuid"`
	ServiceID  string    `json:"service_id" binding:"required,uuid"`
	StartTime  time.Time `json:"start_time" binding:"required"`
}

// UpdateStatusRequest carries the requested status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// AvailabilityRequest defines query parameters for the availability endpoint.
type AvailabilityRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// AvailabilityResponse lists the free slots of a business day.
type AvailabilityResponse struct {
	Date  string             `json:"date"`
	Slots []booking.TimeSlot `json:"slots"`
}
