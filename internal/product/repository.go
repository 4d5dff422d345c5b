package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, activeOnly bool) ([]*Product, error)
	Update(ctx context.Context, p *Product) error

	CreateSlot(ctx context.Context, s *Slot) error
	UpdateSlot(ctx context.Context, s *Slot) error
	DeleteSlot(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Product) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.products").
		Columns(
			"name", "scheduling_mode", "setup_minutes", "teardown_minutes",
			"travel_buffer_minutes", "cleaning_minutes", "is_active",
		).
		Values(
			p.Name, p.SchedulingMode, p.SetupMinutes, p.TeardownMinutes,
			p.TravelBufferMinutes, p.CleaningMinutes, p.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create product query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "scheduling_mode", "setup_minutes", "teardown_minutes",
		"travel_buffer_minutes", "cleaning_minutes", "is_active", "created_at", "updated_at",
	).
		From("public.products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product query failed: %w", err)
	}

	var p Product
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.SchedulingMode, &p.SetupMinutes, &p.TeardownMinutes,
		&p.TravelBufferMinutes, &p.CleaningMinutes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product failed: %w", err)
	}

	slots, err := r.slotsForProduct(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Slots = slots

	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, activeOnly bool) ([]*Product, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "scheduling_mode", "setup_minutes", "teardown_minutes",
		"travel_buffer_minutes", "cleaning_minutes", "is_active", "created_at", "updated_at",
	).
		From("public.products").
		OrderBy("name ASC")

	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.SchedulingMode, &p.SetupMinutes, &p.TeardownMinutes,
			&p.TravelBufferMinutes, &p.CleaningMinutes, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product failed: %w", err)
		}
		products = append(products, &p)
	}

	for _, p := range products {
		slots, err := r.slotsForProduct(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Slots = slots
	}

	return products, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Product) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.products").
		Set("name", p.Name).
		Set("scheduling_mode", p.SchedulingMode).
		Set("setup_minutes", p.SetupMinutes).
		Set("teardown_minutes", p.TeardownMinutes).
		Set("travel_buffer_minutes", p.TravelBufferMinutes).
		Set("cleaning_minutes", p.CleaningMinutes).
		Set("is_active", p.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) slotsForProduct(ctx context.Context, productID string) ([]Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "product_id", "label",
		"to_char(start_local, 'HH24:MI')", "to_char(end_local, 'HH24:MI')",
		"is_active", "created_at",
	).
		From("public.product_slots").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("start_local ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(
			&s.ID, &s.ProductID, &s.Label, &s.StartLocal, &s.EndLocal, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *pgxRepository) CreateSlot(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.product_slots").
		Columns("product_id", "label", "start_local", "end_local", "is_active").
		Values(s.ProductID, s.Label, s.StartLocal, s.EndLocal, s.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt)
}

func (r *pgxRepository) UpdateSlot(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.product_slots").
		Set("label", s.Label).
		Set("start_local", s.StartLocal).
		Set("end_local", s.EndLocal).
		Set("is_active", s.IsActive).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteSlot(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.product_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}
