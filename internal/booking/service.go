package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/catalog"
	"github.com/bookline-app/bookline-backend/internal/notify"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type CreateRequest struct {
	BusinessID string
	ServiceID  string
	CustomerID string
	StartTime  time.Time
	Notes      *string
}

type Service interface {
	// ValidateSlot checks whether the requested slot could be booked right
	// now. Creation re-checks atomically, so a positive answer here is only
	// advisory.
	ValidateSlot(ctx context.Context, businessID, serviceID string, start time.Time) error
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, actorID string, actorRole user.Role) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	TransitionStatus(ctx context.Context, id string, newStatus Status, actorID string, actorRole user.Role) (*Booking, error)
	AvailableSlots(ctx context.Context, businessID string, date time.Time) ([]TimeSlot, error)
}

type service struct {
	repo       Repository
	catManager catalog.Manager
	bizService business.Service
	notifier   notify.Notifier

	now func() time.Time
}

func NewService(repo Repository, catManager catalog.Manager, bizService business.Service, notifier notify.Notifier) Service {
	return &service{
		repo:       repo,
		catManager: catManager,
		bizService: bizService,
		notifier:   notifier,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// resolveSlot fetches the service, validates it against the business, and
// computes the end time from the service duration.
func (s *service) resolveSlot(ctx context.Context, businessID, serviceID string, start time.Time) (*catalog.Service, time.Time, error) {
	svc, err := s.catManager.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, time.Time{}, ErrServiceNotFound
		}
		return nil, time.Time{}, err
	}

	// A service booked through another business's page is treated as absent.
	if svc.BusinessID != businessID {
		return nil, time.Time{}, ErrServiceNotFound
	}
	if !svc.IsAvailable {
		return nil, time.Time{}, ErrServiceUnavailable
	}

	if start.Before(s.now()) {
		return nil, time.Time{}, ErrStartTimePast
	}

	return svc, start.Add(svc.Duration()), nil
}

func (s *service) ValidateSlot(ctx context.Context, businessID, serviceID string, start time.Time) error {
	_, end, err := s.resolveSlot(ctx, businessID, serviceID, start)
	if err != nil {
		return err
	}

	hasOverlap, err := s.repo.HasOverlap(ctx, businessID, start, end)
	if err != nil {
		return err
	}
	if hasOverlap {
		return ErrSlotUnavailable
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if _, err := s.bizService.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	svc, end, err := s.resolveSlot(ctx, req.BusinessID, req.ServiceID, req.StartTime)
	if err != nil {
		return nil, err
	}

	start := req.StartTime
	b := &Booking{
		ServiceID:  req.ServiceID,
		CustomerID: req.CustomerID,
		BusinessID: req.BusinessID,
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:  start,
		EndTime:    end,
		Status:     StatusPending,
		Notes:      req.Notes,
		// Snapshot the price so later catalog changes don't rewrite history.
		TotalAmount: svc.Price,
	}

	// The repository re-checks the slot and inserts in one serializable
	// transaction; this is what actually guards against double booking.
	if err := s.repo.CreateIfFree(ctx, b); err != nil {
		return nil, err
	}

	b.ServiceName = svc.Name
	b.BusinessName = svc.BusinessName
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, actorRole user.Role) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.ownsBooking(b, actorID, actorRole) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// ownsBooking reports whether the actor may see or act on the booking:
// the customer who made it, the owner of the business it belongs to, or
// an admin.
func (s *service) ownsBooking(b *Booking, actorID string, actorRole user.Role) bool {
	switch actorRole {
	case user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return b.CustomerID == actorID
	case user.RoleBusiness:
		return b.BusinessOwnerID == actorID
	default:
		return false
	}
}

func (s *service) TransitionStatus(ctx context.Context, id string, newStatus Status, actorID string, actorRole user.Role) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Order matters: an impossible transition is reported as such even to
	// actors who couldn't perform it anyway.
	if !CanTransition(b.Status, newStatus) {
		return nil, ErrInvalidTransition
	}
	if !RoleMayTransition(actorRole, b.Status, newStatus) {
		return nil, ErrPermissionDenied
	}
	if !s.ownsBooking(b, actorID, actorRole) {
		return nil, ErrPermissionDenied
	}

	updatedAt, err := s.repo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, err
	}
	b.Status = newStatus
	b.UpdatedAt = updatedAt

	// Best effort only: the status change is the source of truth, a failed
	// notification is logged and never rolls it back.
	if err := s.notifier.BookingStatusChanged(ctx, notify.StatusNotification{
		BookingID:     b.ID,
		CustomerEmail: b.CustomerEmail,
		CustomerName:  b.CustomerName,
		ServiceName:   b.ServiceName,
		BusinessName:  b.BusinessName,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		NewStatus:     string(newStatus),
	}); err != nil {
		log.Printf("failed to notify customer %s about booking %s: %v", b.CustomerID, b.ID, err)
	}

	return b, nil
}

func (s *service) AvailableSlots(ctx context.Context, businessID string, date time.Time) ([]TimeSlot, error) {
	biz, err := s.bizService.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, business.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := s.repo.ListActiveInRange(ctx, businessID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots, err := CalculateAvailability(date, biz.OpeningHoursStart, biz.OpeningHoursEnd, bookings)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return slots, nil
}
