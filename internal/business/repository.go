package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Business) error
	GetByID(ctx context.Context, id string) (*Business, error)
	GetByOwner(ctx context.Context, ownerUserID string) (*Business, error)
	List(ctx context.Context, filter Filter) ([]*Business, int, error)
	Update(ctx context.Context, b *Business) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const businessColumns = "id, owner_user_id, name, description, address, phone, opening_hours_start, opening_hours_end, is_active, created_at, updated_at"

func scanBusiness(row pgx.Row) (*Business, error) {
	var b Business
	if err := row.Scan(
		&b.ID, &b.OwnerUserID, &b.Name, &b.Description, &b.Address, &b.Phone,
		&b.OpeningHoursStart, &b.OpeningHoursEnd, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan business failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Business) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.businesses").
		Columns("owner_user_id", "name", "description", "address", "phone",
			"opening_hours_start", "opening_hours_end", "is_active").
		Values(b.OwnerUserID, b.Name, b.Description, b.Address, b.Phone,
			b.OpeningHoursStart, b.OpeningHoursEnd, b.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create business query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		// owner_user_id carries a unique constraint: one profile per account
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("create business failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Business, error) {
	query := "SELECT " + businessColumns + " FROM public.businesses WHERE id = $1"
	return scanBusiness(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByOwner(ctx context.Context, ownerUserID string) (*Business, error) {
	query := "SELECT " + businessColumns + " FROM public.businesses WHERE owner_user_id = $1"
	return scanBusiness(r.pool.QueryRow(ctx, query, ownerUserID))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Business, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_user_id", "name", "description", "address", "phone",
		"opening_hours_start", "opening_hours_end", "is_active", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).From("public.businesses")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"address": pattern},
		})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	query = query.OrderBy("name ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list businesses query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list businesses failed: %w", err)
	}
	defer rows.Close()

	var businesses []*Business
	var total int

	for rows.Next() {
		var b Business
		if err := rows.Scan(
			&b.ID, &b.OwnerUserID, &b.Name, &b.Description, &b.Address, &b.Phone,
			&b.OpeningHoursStart, &b.OpeningHoursEnd, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan business failed: %w", err)
		}
		businesses = append(businesses, &b)
	}

	return businesses, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Business) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.businesses").
		Set("name", b.Name).
		Set("description", b.Description).
		Set("address", b.Address).
		Set("phone", b.Phone).
		Set("opening_hours_start", b.OpeningHoursStart).
		Set("opening_hours_end", b.OpeningHoursEnd).
		Set("is_active", b.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update business query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update business failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
