package catalog

import (
	"context"
	"strings"

	"github.com/bookline-app/bookline-backend/internal/business"
	"github.com/bookline-app/bookline-backend/internal/user"
)

type CreateRequest struct {
	BusinessID      string
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	Price           *float64
	DurationMinutes *int
	IsAvailable     *bool
}

// Manager defines catalog business logic. Named Manager rather than Service
// because Service is the catalog entity itself.
type Manager interface {
	Create(ctx context.Context, req CreateRequest, actorID string, actorRole user.Role) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, actorRole user.Role) (*Service, error)
	Delete(ctx context.Context, id string, actorID string, actorRole user.Role) error
}

type manager struct {
	repo       Repository
	bizService business.Service
}

func NewManager(repo Repository, bizService business.Service) Manager {
	return &manager{
		repo:       repo,
		bizService: bizService,
	}
}

// canManage reports whether the actor owns the business or is an admin.
func (m *manager) canManage(ctx context.Context, businessID, actorID string, actorRole user.Role) (bool, error) {
	if actorRole == user.RoleAdmin {
		return true, nil
	}
	b, err := m.bizService.GetByID(ctx, businessID)
	if err != nil {
		return false, err
	}
	return b.OwnerUserID == actorID, nil
}

func (m *manager) Create(ctx context.Context, req CreateRequest, actorID string, actorRole user.Role) (*Service, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	// Zero-duration services are rejected here, at definition time.
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	ok, err := m.canManage(ctx, req.BusinessID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	s := &Service{
		BusinessID:      req.BusinessID,
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsAvailable:     true,
	}

	if err := m.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *manager) GetByID(ctx context.Context, id string) (*Service, error) {
	return m.repo.GetByID(ctx, id)
}

func (m *manager) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	return m.repo.List(ctx, filter)
}

func (m *manager) Update(ctx context.Context, id string, req UpdateRequest, actorID string, actorRole user.Role) (*Service, error) {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := m.canManage(ctx, s.BusinessID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		s.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		// Price changes never touch existing bookings: total_amount is
		// snapshotted at booking time.
		s.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		s.DurationMinutes = *req.DurationMinutes
	}
	if req.IsAvailable != nil {
		s.IsAvailable = *req.IsAvailable
	}

	if err := m.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *manager) Delete(ctx context.Context, id string, actorID string, actorRole user.Role) error {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := m.canManage(ctx, s.BusinessID, actorID, actorRole)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPermissionDenied
	}

	return m.repo.Delete(ctx, id)
}
