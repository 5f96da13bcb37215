package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/catalog"
	"github.com/bookline-app/bookline-backend/internal/notify"
	"github.com/bookline-app/bookline-backend/internal/user"
)

// fakeRepo is an in-memory Repository with real overlap semantics.
// owners maps business IDs to owner user IDs, standing in for the join
// the SQL repository does on read.
type fakeRepo struct {
	bookings  []*Booking
	owners    map[string]string
	createErr error
	updateErr error
}

func (r *fakeRepo) overlaps(businessID string, start, end time.Time) bool {
	for _, b := range r.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		// Half-open interval check, same as the SQL query.
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateIfFree(ctx context.Context, b *Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.overlaps(b.BusinessID, b.StartTime, b.EndTime) {
		return ErrSlotUnavailable
	}
	b.ID = fmt.Sprintf("bk-%d", len(r.bookings)+1)
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			copied := *b
			copied.BusinessOwnerID = r.owners[b.BusinessID]
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.BusinessID != "" && b.BusinessID != filter.BusinessID {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) (time.Time, error) {
	if r.updateErr != nil {
		return time.Time{}, r.updateErr
	}
	for _, b := range r.bookings {
		if b.ID == id {
			b.Status = status
			b.UpdatedAt = time.Now().UTC()
			return b.UpdatedAt, nil
		}
	}
	return time.Time{}, ErrNotFound
}

func (r *fakeRepo) HasOverlap(ctx context.Context, businessID string, start, end time.Time) (bool, error) {
	return r.overlaps(businessID, start, end), nil
}

func (r *fakeRepo) ListActiveInRange(ctx context.Context, businessID string, from, to time.Time) ([]*Booking, error) {
	var out []*Booking
	for _, b := range r.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if b.Status != StatusPending && b.Status != StatusConfirmed {
			continue
		}
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeCatalog serves a fixed set of services by ID.
type fakeCatalog struct {
	services map[string]*catalog.Service
}

func (f *fakeCatalog) GetByID(ctx context.Context, id string) (*catalog.Service, error) {
	if s, ok := f.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeCatalog) Create(ctx context.Context, req catalog.CreateRequest, actorID string, actorRole user.Role) (*catalog.Service, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) List(ctx context.Context, filter catalog.Filter) ([]*catalog.Service, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeCatalog) Update(ctx context.Context, id string, req catalog.UpdateRequest, actorID string, actorRole user.Role) (*catalog.Service, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeCatalog) Delete(ctx context.Context, id string, actorID string, actorRole user.Role) error {
	return errors.New("not implemented")
}

// fakeBiz serves a fixed set of businesses by ID.
type fakeBiz struct {
	businesses map[string]*business.Business
}

func (f *fakeBiz) GetByID(ctx context.Context, id string) (*business.Business, error) {
	if b, ok := f.businesses[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, business.ErrNotFound
}

func (f *fakeBiz) Create(ctx context.Context, req business.CreateRequest) (*business.Business, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBiz) GetByOwner(ctx context.Context, ownerUserID string) (*business.Business, error) {
	for _, b := range f.businesses {
		if b.OwnerUserID == ownerUserID {
			return b, nil
		}
	}
	return nil, business.ErrNotFound
}

func (f *fakeBiz) List(ctx context.Context, filter business.Filter) ([]*business.Business, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeBiz) Update(ctx context.Context, id string, req business.UpdateRequest, actorID string, actorRole user.Role) (*business.Business, error) {
	return nil, errors.New("not implemented")
}

// fakeNotifier records notifications and optionally fails.
type fakeNotifier struct {
	sent []notify.StatusNotification
	err  error
}

func (f *fakeNotifier) BookingStatusChanged(ctx context.Context, n notify.StatusNotification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

type fixture struct {
	svc      Service
	repo     *fakeRepo
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := &fakeRepo{owners: map[string]string{
		"biz-1": "owner-1",
		"biz-2": "owner-2",
	}}
	cat := &fakeCatalog{services: map[string]*catalog.Service{
		"svc-haircut": {
			ID:              "svc-haircut",
			BusinessID:      "biz-1",
			BusinessName:    "Sharp Cuts",
			Name:            "Men's haircut",
			Price:           25,
			DurationMinutes: 60,
			IsAvailable:     true,
		},
		"svc-retired": {
			ID:              "svc-retired",
			BusinessID:      "biz-1",
			BusinessName:    "Sharp Cuts",
			Name:            "Hot towel shave",
			Price:           15,
			DurationMinutes: 30,
			IsAvailable:     false,
		},
	}}
	biz := &fakeBiz{businesses: map[string]*business.Business{
		"biz-1": {
			ID:                "biz-1",
			OwnerUserID:       "owner-1",
			Name:              "Sharp Cuts",
			OpeningHoursStart: "09:00:00",
			OpeningHoursEnd:   "18:00:00",
			IsActive:          true,
		},
		"biz-2": {
			ID:                "biz-2",
			OwnerUserID:       "owner-2",
			Name:              "Other Shop",
			OpeningHoursStart: "09:00:00",
			OpeningHoursEnd:   "18:00:00",
			IsActive:          true,
		},
	}}
	notifier := &fakeNotifier{}

	svc := NewService(repo, cat, biz, notifier)
	// Pin the clock well before the test bookings.
	svc.(*service).now = func() time.Time {
		return time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	}

	return &fixture{svc: svc, repo: repo, notifier: notifier}
}

func slotAt(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1",
		ServiceID:  "svc-haircut",
		CustomerID: "cust-1",
		StartTime:  slotAt(10, 0),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, slotAt(10, 0), b.StartTime)
	// End time comes from the service duration.
	assert.Equal(t, slotAt(11, 0), b.EndTime)
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), b.Date)
	// Price snapshot taken at creation.
	assert.Equal(t, 25.0, b.TotalAmount)
}

func TestCreateBookingPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat := &fakeCatalog{services: map[string]*catalog.Service{
		"svc-haircut": {
			ID: "svc-haircut", BusinessID: "biz-1", BusinessName: "Sharp Cuts",
			Name: "Men's haircut", Price: 25, DurationMinutes: 60, IsAvailable: true,
		},
	}}
	f.svc.(*service).catManager = cat

	b, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)
	require.Equal(t, 25.0, b.TotalAmount)

	// A later price change never rewrites existing bookings.
	cat.services["svc-haircut"].Price = 40

	stored, err := f.svc.GetByID(ctx, b.ID, "cust-1", user.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, 25.0, stored.TotalAmount)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	// Overlapping request from another customer: 10:30 falls inside 10:00-11:00.
	_, err = f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-2",
		StartTime: slotAt(10, 30),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// Identical slot is rejected too.
	_, err = f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-2",
		StartTime: slotAt(10, 0),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestCreateBookingBackToBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	// A booking starting exactly when the previous one ends never conflicts.
	_, err = f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-2",
		StartTime: slotAt(11, 0),
	})
	assert.NoError(t, err)
}

func TestCreateBookingCancelledSlotIsFree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	_, err = f.svc.TransitionStatus(ctx, b.ID, StatusCancelled, "cust-1", user.RoleCustomer)
	require.NoError(t, err)

	// The cancelled booking no longer occupies the slot.
	_, err = f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-2",
		StartTime: slotAt(10, 0),
	})
	assert.NoError(t, err)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("unknown business", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{
			BusinessID: "biz-missing", ServiceID: "svc-haircut", CustomerID: "cust-1",
			StartTime: slotAt(10, 0),
		})
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{
			BusinessID: "biz-1", ServiceID: "svc-missing", CustomerID: "cust-1",
			StartTime: slotAt(10, 0),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("service from another business", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{
			BusinessID: "biz-2", ServiceID: "svc-haircut", CustomerID: "cust-1",
			StartTime: slotAt(10, 0),
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unavailable service", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{
			BusinessID: "biz-1", ServiceID: "svc-retired", CustomerID: "cust-1",
			StartTime: slotAt(10, 0),
		})
		assert.ErrorIs(t, err, ErrServiceUnavailable)
	})

	t.Run("start time in the past", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateRequest{
			BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
			StartTime: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrStartTimePast)
	})
}

func TestValidateSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.ValidateSlot(ctx, "biz-1", "svc-haircut", slotAt(10, 0))
	assert.NoError(t, err)

	_, err = f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	err = f.svc.ValidateSlot(ctx, "biz-1", "svc-haircut", slotAt(10, 30))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	err = f.svc.ValidateSlot(ctx, "biz-1", "svc-haircut", slotAt(11, 0))
	assert.NoError(t, err)
}

func TestTransitionStatus(t *testing.T) {
	newBooking := func(t *testing.T, f *fixture) *Booking {
		t.Helper()
		b, err := f.svc.Create(context.Background(), CreateRequest{
			BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
			StartTime: slotAt(10, 0),
		})
		require.NoError(t, err)
		return b
	}

	t.Run("business owner confirms", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		got, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "owner-1", user.RoleBusiness)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)
	})

	t.Run("customer cancels own booking", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		got, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusCancelled, "cust-1", user.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "cust-1", user.RoleCustomer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusCancelled, "cust-other", user.RoleCustomer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("owner of another business cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "owner-2", user.RoleBusiness)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusCompleted, "owner-1", user.RoleBusiness)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("full lifecycle then late cancel is rejected", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "owner-1", user.RoleBusiness)
		require.NoError(t, err)
		_, err = f.svc.TransitionStatus(context.Background(), b.ID, StatusCompleted, "owner-1", user.RoleBusiness)
		require.NoError(t, err)

		// The customer can no longer cancel a completed booking.
		_, err = f.svc.TransitionStatus(context.Background(), b.ID, StatusCancelled, "cust-1", user.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusCancelled, "cust-1", user.RoleCustomer)
		require.NoError(t, err)

		_, err = f.svc.TransitionStatus(context.Background(), b.ID, StatusPending, "admin-1", user.RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("invalid transition reported before permission", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		// cust-other has no permission either, but the impossible
		// transition wins.
		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusCompleted, "cust-other", user.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("notification sent on change", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)

		_, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "owner-1", user.RoleBusiness)
		require.NoError(t, err)

		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, b.ID, f.notifier.sent[0].BookingID)
		assert.Equal(t, string(StatusConfirmed), f.notifier.sent[0].NewStatus)
	})

	t.Run("notification failure does not roll back", func(t *testing.T) {
		f := newFixture(t)
		b := newBooking(t, f)
		f.notifier.err = errors.New("smtp down")

		got, err := f.svc.TransitionStatus(context.Background(), b.ID, StatusConfirmed, "owner-1", user.RoleBusiness)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, got.Status)

		stored, err := f.repo.GetByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, stored.Status)
	})
}

func TestGetByIDOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, "cust-1", user.RoleCustomer)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, "owner-1", user.RoleBusiness)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, "admin-1", user.RoleAdmin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, b.ID, "cust-other", user.RoleCustomer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.GetByID(ctx, b.ID, "owner-2", user.RoleBusiness)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateRequest{
		BusinessID: "biz-1", ServiceID: "svc-haircut", CustomerID: "cust-1",
		StartTime: slotAt(10, 0),
	})
	require.NoError(t, err)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	slots, err := f.svc.AvailableSlots(ctx, "biz-1", date)
	require.NoError(t, err)

	assert.Equal(t, []TimeSlot{
		{StartTime: slotAt(9, 0), EndTime: slotAt(10, 0)},
		{StartTime: slotAt(11, 0), EndTime: slotAt(18, 0)},
	}, slots)

	_, err = f.svc.AvailableSlots(ctx, "biz-missing", date)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
