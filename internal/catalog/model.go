package catalog

import (
	"net/http"
	"time"

	"github.com/bookline-app/bookline-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "service not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Service represents a bookable offering in a business's catalog
// (e.g. "Men's haircut, 30 min, $25").
type Service struct {
	ID              string
	BusinessID      string
	BusinessName    string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Filter defines parameters for listing services.
type Filter struct {
	BusinessID    string
	Keyword       string
	AvailableOnly bool
	Page          int
	PageSize      int
}
