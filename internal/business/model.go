package business

import (
	"net/http"
	"time"

	"github.com/bookline-app/bookline-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "business not found")
	ErrAlreadyRegistered = apperror.New(http.StatusConflict, "user already has a business profile")
	ErrNameRequired      = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidHours      = apperror.New(http.StatusBadRequest, "opening hours must be HH:MM or HH:MM:SS with start before end")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Business represents a provider profile that owns services and receives bookings.
type Business struct {
	ID                string
	OwnerUserID       string
	Name              string
	Description       string
	Address           string
	Phone             string
	OpeningHoursStart string // Format: HH:MM:SS
	OpeningHoursEnd   string // Format: HH:MM:SS
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter defines parameters for listing businesses.
type Filter struct {
	Keyword  string // Search in Name or Address
	IsActive *bool
	Page     int
	PageSize int
}
