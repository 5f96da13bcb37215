package booking

import (
	"net/http"
	"time"

	"github.com/bookline-app/bookline-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "booking not found")
	ErrServiceNotFound    = apperror.New(http.StatusNotFound, "service not found")
	ErrBusinessNotFound   = apperror.New(http.StatusNotFound, "business not found")
	ErrSlotUnavailable    = apperror.New(http.StatusConflict, "time slot already booked")
	ErrServiceUnavailable = apperror.New(http.StatusConflict, "service is not available for booking")
	ErrInvalidTransition  = apperror.New(http.StatusBadRequest, "status transition not allowed")
	ErrPermissionDenied   = apperror.New(http.StatusForbidden, "permission denied")
	ErrStartTimePast      = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidDate        = apperror.New(http.StatusBadRequest, "invalid date")
)

// Booking represents one reservation of a service at a business for a customer.
// TotalAmount is a snapshot of the service price at booking time; later price
// changes never alter it.
type Booking struct {
	ID              string
	ServiceID       string
	ServiceName     string
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	BusinessID      string
	BusinessName    string
	BusinessOwnerID string
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
	Notes           *string
	TotalAmount     float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	CustomerID string
	BusinessID string
	ServiceID  string
	Status     string
	StartTime  *time.Time // Bookings ending after this time
	EndTime    *time.Time // Bookings starting before this time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
