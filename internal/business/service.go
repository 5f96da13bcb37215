package business

import (
	"context"
	"strings"
	"time"

	"github.com/bookline-app/bookline-backend/internal/user"
)

type CreateRequest struct {
	OwnerUserID       string
	Name              string
	Description       string
	Address           string
	Phone             string
	OpeningHoursStart string
	OpeningHoursEnd   string
}

type UpdateRequest struct {
	Name              *string
	Description       *string
	Address           *string
	Phone             *string
	OpeningHoursStart *string
	OpeningHoursEnd   *string
	IsActive          *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Business, error)
	GetByID(ctx context.Context, id string) (*Business, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Business, error)
	List(ctx context.Context, filter Filter) ([]*Business, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, actorRole user.Role) (*Business, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Business, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	start, end, err := normalizeHours(req.OpeningHoursStart, req.OpeningHoursEnd)
	if err != nil {
		return nil, err
	}

	b := &Business{
		OwnerUserID:       req.OwnerUserID,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		Address:           req.Address,
		Phone:             req.Phone,
		OpeningHoursStart: start,
		OpeningHoursEnd:   end,
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Business, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerUserID string) (*Business, error) {
	return s.repo.GetByOwner(ctx, ownerUserID)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Business, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, actorRole user.Role) (*Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorRole != user.RoleAdmin && b.OwnerUserID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}

	newStart := b.OpeningHoursStart
	newEnd := b.OpeningHoursEnd
	if req.OpeningHoursStart != nil {
		newStart = *req.OpeningHoursStart
	}
	if req.OpeningHoursEnd != nil {
		newEnd = *req.OpeningHoursEnd
	}
	if req.OpeningHoursStart != nil || req.OpeningHoursEnd != nil {
		start, end, err := normalizeHours(newStart, newEnd)
		if err != nil {
			return nil, err
		}
		b.OpeningHoursStart = start
		b.OpeningHoursEnd = end
	}

	// Only admins may toggle is_active (suspension)
	if req.IsActive != nil {
		if actorRole != user.RoleAdmin {
			return nil, ErrPermissionDenied
		}
		b.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// normalizeHours validates opening hours and returns them in HH:MM:SS form.
func normalizeHours(start, end string) (string, string, error) {
	st, err := parseClock(start)
	if err != nil {
		return "", "", ErrInvalidHours
	}
	en, err := parseClock(end)
	if err != nil {
		return "", "", ErrInvalidHours
	}
	if !st.Before(en) {
		return "", "", ErrInvalidHours
	}
	return st.Format("15:04:05"), en.Format("15:04:05"), nil
}

// parseClock parses a wall-clock string in HH:MM:SS or HH:MM format.
func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}
