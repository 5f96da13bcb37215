package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByBusiness(ctx context.Context, businessID string) ([]Photo, error)
	Delete(ctx context.Context, id string) error
}

type pgRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *pgRepository) Create(ctx context.Context, p *Photo) error {
	query, args, err := r.sb.
		Insert("photos").
		Columns("business_id", "uploader_id", "filename", "storage_path", "thumbnail_path", "content_type", "size").
		Values(p.BusinessID, p.UploaderID, p.Filename, p.StoragePath, p.ThumbnailPath, p.ContentType, p.Size).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert photo query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *pgRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	query, args, err := r.sb.
		Select("id", "business_id", "uploader_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		From("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select photo query: %w", err)
	}

	p, err := scanPhoto(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select photo: %w", err)
	}
	return p, nil
}

func (r *pgRepository) ListByBusiness(ctx context.Context, businessID string) ([]Photo, error) {
	query, args, err := r.sb.
		Select("id", "business_id", "uploader_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		From("photos").
		Where(sq.Eq{"business_id": businessID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list photos query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo row: %w", err)
		}
		photos = append(photos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photo rows: %w", err)
	}
	return photos, nil
}

func (r *pgRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.
		Delete("photos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete photo query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (*Photo, error) {
	var p Photo
	var thumbnail sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.BusinessID,
		&p.UploaderID,
		&p.Filename,
		&p.StoragePath,
		&thumbnail,
		&p.ContentType,
		&p.Size,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		p.ThumbnailPath = &thumbnail.String
	}
	return &p, nil
}
