package attention

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists attention items. Duplicate suppression for pending
// items is enforced by a partial unique index on (booking_id, item_type),
// not by a read-then-insert check.
type Repository interface {
	// Create inserts a new item. If a pending item of the same
	// (booking, type) already exists the insert is suppressed and the
	// existing item is returned with suppressed = true.
	Create(ctx context.Context, item *Item) (suppressed bool, err error)

	GetByID(ctx context.Context, id string) (*Item, error)

	// ListPending returns open items ordered by priority (urgent first)
	// then age (oldest first).
	ListPending(ctx context.Context) ([]*Item, error)

	ListForBooking(ctx context.Context, bookingID string) ([]*Item, error)

	// Update writes the mutable fields: status and resolution data.
	Update(ctx context.Context, item *Item) error

	// ResolvePendingForBooking closes every pending item of a booking.
	// Returns the number of items resolved.
	ResolvePendingForBooking(ctx context.Context, bookingID, action string) (int, error)

	// CountsByPriority counts open items grouped by priority, using the
	// same open definition as ListPending.
	CountsByPriority(ctx context.Context) (map[Priority]int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const itemColumns = `id, booking_id, item_type, priority, status, note,
	suggested_actions, started_by, resolved_by, resolved_action, resolution_notes, resolved_at, created_at`

func (r *pgxRepository) Create(ctx context.Context, item *Item) (bool, error) {
	actions, err := json.Marshal(item.SuggestedActions)
	if err != nil {
		return false, fmt.Errorf("marshal suggested actions failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.attention_items").
		Columns("booking_id", "item_type", "priority", "note", "suggested_actions").
		Values(item.BookingID, item.Type, item.Priority, item.Note, actions).
		Suffix("ON CONFLICT (booking_id, item_type) WHERE status = 'pending' DO NOTHING").
		Suffix("RETURNING id, status, created_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build create query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&item.ID, &item.Status, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// The partial unique index suppressed the insert; load the
		// already-pending item so the caller sees current state.
		existing, err := r.pendingFor(ctx, item.BookingID, item.Type)
		if err != nil {
			return false, err
		}
		*item = *existing
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("create attention item failed: %w", err)
	}
	return false, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("public.attention_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query failed: %w", err)
	}

	item, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attention item failed: %w", err)
	}
	return item, nil
}

func (r *pgxRepository) pendingFor(ctx context.Context, bookingID string, itemType Type) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("public.attention_items").
		Where(squirrel.Eq{
			"booking_id": bookingID,
			"item_type":  itemType,
			"status":     StatusPending,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build pending query failed: %w", err)
	}

	item, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pending attention item failed: %w", err)
	}
	return item, nil
}

func (r *pgxRepository) ListPending(ctx context.Context) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("public.attention_items").
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusInProgress}}).
		OrderBy(
			"array_position(ARRAY['urgent','high','medium','low'], priority)",
			"created_at ASC",
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query failed: %w", err)
	}

	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) ListForBooking(ctx context.Context, bookingID string) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns).
		From("public.attention_items").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query failed: %w", err)
	}

	return r.queryItems(ctx, query, args)
}

func (r *pgxRepository) Update(ctx context.Context, item *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.attention_items").
		Set("status", item.Status).
		Set("started_by", item.StartedBy).
		Set("resolved_by", item.ResolvedBy).
		Set("resolved_action", item.ResolvedAction).
		Set("resolution_notes", item.ResolutionNotes).
		Set("resolved_at", item.ResolvedAt).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update attention item failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ResolvePendingForBooking(ctx context.Context, bookingID, action string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.attention_items").
		Set("status", StatusResolved).
		Set("resolved_action", action).
		Set("resolved_at", time.Now().UTC()).
		Where(squirrel.Eq{
			"booking_id": bookingID,
			"status":     []Status{StatusPending, StatusInProgress},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build resolve query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("resolve attention items failed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgxRepository) CountsByPriority(ctx context.Context) (map[Priority]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	// Same definition of "open" as ListPending, so the worklist and its
	// summary counts always agree.
	query, args, err := psql.Select("priority", "count(*)").
		From("public.attention_items").
		Where(squirrel.Eq{"status": []Status{StatusPending, StatusInProgress}}).
		GroupBy("priority").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build counts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count attention items failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Priority]int)
	for rows.Next() {
		var p Priority
		var n int
		if err := rows.Scan(&p, &n); err != nil {
			return nil, fmt.Errorf("scan count failed: %w", err)
		}
		counts[p] = n
	}
	return counts, rows.Err()
}

func (r *pgxRepository) queryItems(ctx context.Context, query string, args []any) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attention items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attention item failed: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	var actions []byte
	if err := row.Scan(
		&item.ID, &item.BookingID, &item.Type, &item.Priority, &item.Status, &item.Note,
		&actions, &item.StartedBy, &item.ResolvedBy, &item.ResolvedAction,
		&item.ResolutionNotes, &item.ResolvedAt, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actions, &item.SuggestedActions); err != nil {
		return nil, fmt.Errorf("unmarshal suggested actions failed: %w", err)
	}
	return &item, nil
}
