package operator

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

// Repository defines methods for accessing operator accounts.
type Repository interface {
	Create(ctx context.Context, o *Operator) error
	GetByID(ctx context.Context, id string) (*Operator, error)
	GetByEmail(ctx context.Context, email string) (*Operator, error)
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	List(ctx context.Context) ([]*Operator, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, o *Operator) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.operators").
		Columns("email", "password_hash", "display_name", "is_admin", "is_active").
		Values(o.Email, o.PasswordHash, o.DisplayName, o.IsAdmin, o.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create operator query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create operator failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Operator, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

func (r *pgxRepository) getBy(ctx context.Context, pred squirrel.Eq) (*Operator, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "email", "password_hash", "display_name",
		"is_admin", "is_active", "created_at", "last_login_at",
	).
		From("public.operators").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get operator query failed: %w", err)
	}

	var o Operator
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&o.ID, &o.Email, &o.PasswordHash, &o.DisplayName,
		&o.IsAdmin, &o.IsActive, &o.CreatedAt, &o.LastLoginAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get operator failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.operators").
		Set("last_login_at", t).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update last login query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update last login failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context) ([]*Operator, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "email", "password_hash", "display_name",
		"is_admin", "is_active", "created_at", "last_login_at",
	).
		From("public.operators").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list operators query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operators failed: %w", err)
	}
	defer rows.Close()

	var operators []*Operator
	for rows.Next() {
		var o Operator
		if err := rows.Scan(
			&o.ID, &o.Email, &o.PasswordHash, &o.DisplayName,
			&o.IsAdmin, &o.IsActive, &o.CreatedAt, &o.LastLoginAt,
		); err != nil {
			return nil, fmt.Errorf("scan operator failed: %w", err)
		}
		operators = append(operators, &o)
	}
	return operators, nil
}
