package business

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookline-app/bookline-backend/internal/user"
)

type fakeRepo struct {
	businesses map[string]*Business
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{businesses: map[string]*Business{}}
}

func (r *fakeRepo) Create(ctx context.Context, b *Business) error {
	for _, existing := range r.businesses {
		if existing.OwnerUserID == b.OwnerUserID {
			return ErrAlreadyRegistered
		}
	}
	r.nextID++
	b.ID = fmt.Sprintf("biz-%d", r.nextID)
	copied := *b
	r.businesses[b.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByOwner(ctx context.Context, ownerUserID string) (*Business, error) {
	for _, b := range r.businesses {
		if b.OwnerUserID == ownerUserID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Business, int, error) {
	var out []*Business
	for _, b := range r.businesses {
		out = append(out, b)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Business) error {
	if _, ok := r.businesses[b.ID]; !ok {
		return ErrNotFound
	}
	copied := *b
	r.businesses[b.ID] = &copied
	return nil
}

func TestCreateBusiness(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{
		OwnerUserID:       "owner-1",
		Name:              "Sharp Cuts",
		OpeningHoursStart: "09:00",
		OpeningHoursEnd:   "18:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	// Hours are normalized to HH:MM:SS.
	assert.Equal(t, "09:00:00", b.OpeningHoursStart)
	assert.Equal(t, "18:00:00", b.OpeningHoursEnd)
	assert.True(t, b.IsActive)
}

func TestCreateBusinessValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		OwnerUserID: "owner-1", Name: "  ",
		OpeningHoursStart: "09:00", OpeningHoursEnd: "18:00",
	})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(ctx, CreateRequest{
		OwnerUserID: "owner-1", Name: "Shop",
		OpeningHoursStart: "18:00", OpeningHoursEnd: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = svc.Create(ctx, CreateRequest{
		OwnerUserID: "owner-1", Name: "Shop",
		OpeningHoursStart: "morning", OpeningHoursEnd: "18:00",
	})
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestCreateBusinessOnePerOwner(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{
		OwnerUserID: "owner-1", Name: "Shop A",
		OpeningHoursStart: "09:00", OpeningHoursEnd: "18:00",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{
		OwnerUserID: "owner-1", Name: "Shop B",
		OpeningHoursStart: "09:00", OpeningHoursEnd: "18:00",
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestUpdateBusiness(t *testing.T) {
	newBusiness := func(t *testing.T) (Service, *Business) {
		t.Helper()
		svc := NewService(newFakeRepo())
		b, err := svc.Create(context.Background(), CreateRequest{
			OwnerUserID: "owner-1", Name: "Shop",
			OpeningHoursStart: "09:00", OpeningHoursEnd: "18:00",
		})
		require.NoError(t, err)
		return svc, b
	}

	t.Run("owner updates own profile", func(t *testing.T) {
		svc, b := newBusiness(t)

		name := "Sharper Cuts"
		updated, err := svc.Update(context.Background(), b.ID, UpdateRequest{Name: &name}, "owner-1", user.RoleBusiness)
		require.NoError(t, err)
		assert.Equal(t, "Sharper Cuts", updated.Name)
	})

	t.Run("other users are rejected", func(t *testing.T) {
		svc, b := newBusiness(t)

		name := "Hijacked"
		_, err := svc.Update(context.Background(), b.ID, UpdateRequest{Name: &name}, "owner-2", user.RoleBusiness)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("hours re-validated together", func(t *testing.T) {
		svc, b := newBusiness(t)

		// Moving the start past the existing end must fail.
		start := "19:00"
		_, err := svc.Update(context.Background(), b.ID, UpdateRequest{OpeningHoursStart: &start}, "owner-1", user.RoleBusiness)
		assert.ErrorIs(t, err, ErrInvalidHours)
	})

	t.Run("only admins toggle is_active", func(t *testing.T) {
		svc, b := newBusiness(t)
		suspended := false

		_, err := svc.Update(context.Background(), b.ID, UpdateRequest{IsActive: &suspended}, "owner-1", user.RoleBusiness)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		updated, err := svc.Update(context.Background(), b.ID, UpdateRequest{IsActive: &suspended}, "admin-1", user.RoleAdmin)
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
	})
}
