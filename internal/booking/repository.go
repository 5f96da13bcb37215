package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateIfFree atomically re-checks the slot and inserts the booking in
	// one serializable transaction, so two concurrent requests for an
	// overlapping slot cannot both succeed. Returns ErrSlotUnavailable on
	// conflict.
	CreateIfFree(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (time.Time, error)

	// HasOverlap checks if any active (pending or confirmed) booking for the
	// business overlaps the half-open interval [start, end).
	HasOverlap(ctx context.Context, businessID string, start, end time.Time) (bool, error)

	// ListActiveInRange returns active bookings for a business whose interval
	// intersects [from, to), ordered by start time. Used for availability.
	ListActiveInRange(ctx context.Context, businessID string, from, to time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// activeStatuses are the statuses that occupy a slot.
var activeStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func overlapQuery(businessID string, start, end time.Time) squirrel.SelectBuilder {
	// Half-open interval semantics: [s, e) overlaps [start, end) iff
	// s < end AND e > start. Back-to-back bookings never conflict.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"business_id": businessID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})
}

func (r *pgxRepository) HasOverlap(ctx context.Context, businessID string, start, end time.Time) (bool, error) {
	sql, args, err := overlapQuery(businessID, start, end).ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CreateIfFree(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin booking transaction failed: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := overlapQuery(b.BusinessID, b.StartTime, b.EndTime).ToSql()
	if err != nil {
		return fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrSlotUnavailable
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insertSQL, insertArgs, err := psql.Insert("public.bookings").
		Columns("service_id", "customer_id", "business_id", "date",
			"start_time", "end_time", "status", "notes", "total_amount").
		Values(b.ServiceID, b.CustomerID, b.BusinessID, b.Date,
			b.StartTime, b.EndTime, b.Status, b.Notes, b.TotalAmount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapConflict(err, fmt.Errorf("create booking failed: %w", err))
	}

	if err := tx.Commit(ctx); err != nil {
		return mapConflict(err, fmt.Errorf("commit booking failed: %w", err))
	}
	return nil
}

// mapConflict converts concurrency-related database errors into
// ErrSlotUnavailable: a serialization failure means a concurrent booking won
// the race, an exclusion violation means the bookings_no_overlap constraint
// caught the overlap.
func mapConflict(err, fallback error) error {
	var e *pgconn.PgError
	if errors.As(err, &e) {
		switch e.Code {
		case pgerrcode.SerializationFailure, pgerrcode.ExclusionViolation:
			return ErrSlotUnavailable
		}
	}
	return fallback
}

const bookingColumns = `bk.id, bk.service_id, s.name, bk.customer_id,
	COALESCE(u.display_name, u.email), u.email,
	bk.business_id, b.name, b.owner_user_id,
	bk.date, bk.start_time, bk.end_time, bk.status, bk.notes, bk.total_amount,
	bk.created_at, bk.updated_at`

func bookingJoins(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	return q.From("public.bookings bk").
		Join("public.services s ON bk.service_id = s.id").
		Join("public.businesses b ON bk.business_id = b.id").
		Join("public.users u ON bk.customer_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ServiceID, &b.ServiceName, &b.CustomerID,
		&b.CustomerName, &b.CustomerEmail,
		&b.BusinessID, &b.BusinessName, &b.BusinessOwnerID,
		&b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.Notes, &b.TotalAmount,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := bookingJoins(psql.Select(bookingColumns)).
		Where(squirrel.Eq{"bk.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingJoins(psql.Select(bookingColumns + ", count(*) OVER() as total_count"))

	if filter.CustomerID != "" {
		query = query.Where(squirrel.Eq{"bk.customer_id": filter.CustomerID})
	}
	if filter.BusinessID != "" {
		query = query.Where(squirrel.Eq{"bk.business_id": filter.BusinessID})
	}
	if filter.ServiceID != "" {
		query = query.Where(squirrel.Eq{"bk.service_id": filter.ServiceID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"bk.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"bk.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"bk.start_time": filter.EndTime})
	}

	// Sorting: bookings list chronologically by default
	orderBy := "bk.start_time"
	if filter.SortBy != "" {
		orderBy = "bk." + filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) (time.Time, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("build update booking status query failed: %w", err)
	}

	var updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("update booking status failed: %w", err)
	}
	return updatedAt, nil
}

func (r *pgxRepository) ListActiveInRange(ctx context.Context, businessID string, from, to time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := bookingJoins(psql.Select(bookingColumns)).
		Where(squirrel.Eq{"bk.business_id": businessID}).
		Where(squirrel.Eq{"bk.status": activeStatuses}).
		Where(squirrel.Lt{"bk.start_time": to}).
		Where(squirrel.Gt{"bk.end_time": from}).
		OrderBy("bk.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
