package ledger

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

// Repository is the time-block ledger: the single source of truth for
// "is this resource busy". The no-overlap invariant is enforced per
// (resource, concurrency slot) by the booking_blocks exclusion
// constraint at write time, never by an application-level
// check-then-insert.
type Repository interface {
	// ReserveAll writes every spec in one transaction, assigning each
	// block the lowest free concurrency slot of its resource. If a
	// resource has no free slot over the window, or a concurrent
	// booking wins the race for the same slot, the whole set is rolled
	// back and ErrConflict is returned.
	ReserveAll(ctx context.Context, bookingID string, specs []Spec) ([]Block, error)

	// Release deletes all blocks owned by a booking. Idempotent;
	// releasing a booking with no blocks is not an error.
	Release(ctx context.Context, bookingID string) error

	// BlocksFor returns the blocks of one resource intersecting [start, end).
	BlocksFor(ctx context.Context, resourceID string, start, end time.Time) ([]Block, error)

	// BlocksForBooking returns all blocks owned by a booking.
	BlocksForBooking(ctx context.Context, bookingID string) ([]Block, error)

	// CountOverlapping counts the concurrency slots of one resource
	// holding a block that overlaps [start, end). A slot with any
	// overlapping block cannot take another block over that window, so
	// a resource is free iff this count is below its capacity.
	CountOverlapping(ctx context.Context, resourceID string, start, end time.Time) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ReserveAll(ctx context.Context, bookingID string, specs []Spec) ([]Block, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySpec
	}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reserve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	blocks := make([]Block, 0, len(specs))

	for _, spec := range specs {
		slotNo, err := r.pickSlot(ctx, tx, spec)
		if err != nil {
			return nil, err
		}

		query, args, err := psql.Insert("public.booking_blocks").
			Columns("resource_id", "booking_id", "kind", "slot_no", "start_time", "end_time").
			Values(spec.ResourceID, bookingID, spec.Kind, slotNo, spec.Start, spec.End).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build reserve query failed: %w", err)
		}

		b := Block{
			ResourceID: spec.ResourceID,
			BookingID:  bookingID,
			Kind:       spec.Kind,
			SlotNo:     slotNo,
			Start:      spec.Start,
			End:        spec.End,
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
				// A concurrent booking committed the same slot between the
				// slot pick and this insert. The deferred rollback discards
				// any blocks already written in this attempt; its committed
				// block is visible on retry, so the retry picks another slot.
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("reserve block failed: %w", err)
		}
		blocks = append(blocks, b)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reserve tx failed: %w", err)
	}
	return blocks, nil
}

// pickSlot finds the lowest concurrency slot of the spec's resource with
// no block overlapping the spec's window. ErrConflict when all slots are
// taken; the pick is only advisory and the exclusion constraint settles
// races at insert time.
func (r *pgxRepository) pickSlot(ctx context.Context, tx pgx.Tx, spec Spec) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("capacity").
		From("public.resources").
		Where(squirrel.Eq{"id": spec.ResourceID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build capacity query failed: %w", err)
	}
	var capacity int
	if err := tx.QueryRow(ctx, query, args...).Scan(&capacity); err != nil {
		return 0, fmt.Errorf("read resource capacity failed: %w", err)
	}

	query, args, err = psql.Select("slot_no").
		From("public.booking_blocks").
		Where(squirrel.Eq{"resource_id": spec.ResourceID}).
		Where(squirrel.Lt{"start_time": spec.End}).
		Where(squirrel.Gt{"end_time": spec.Start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build occupied slots query failed: %w", err)
	}
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("query occupied slots failed: %w", err)
	}
	defer rows.Close()

	var occupied []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan occupied slot failed: %w", err)
		}
		occupied = append(occupied, n)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("read occupied slots failed: %w", err)
	}

	slotNo, ok := lowestFreeSlot(occupied, capacity)
	if !ok {
		return 0, ErrConflict
	}
	return slotNo, nil
}

func (r *pgxRepository) Release(ctx context.Context, bookingID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.booking_blocks").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build release query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release blocks failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) BlocksFor(ctx context.Context, resourceID string, start, end time.Time) ([]Block, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "resource_id", "booking_id", "kind", "slot_no", "start_time", "end_time", "created_at",
	).
		From("public.booking_blocks").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blocks query failed: %w", err)
	}

	return r.queryBlocks(ctx, query, args)
}

func (r *pgxRepository) BlocksForBooking(ctx context.Context, bookingID string) ([]Block, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "resource_id", "booking_id", "kind", "slot_no", "start_time", "end_time", "created_at",
	).
		From("public.booking_blocks").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking blocks query failed: %w", err)
	}

	return r.queryBlocks(ctx, query, args)
}

func (r *pgxRepository) queryBlocks(ctx context.Context, query string, args []any) ([]Block, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query blocks failed: %w", err)
	}
	defer rows.Close()

	var blocks []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(
			&b.ID, &b.ResourceID, &b.BookingID, &b.Kind, &b.SlotNo, &b.Start, &b.End, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan block failed: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (r *pgxRepository) CountOverlapping(ctx context.Context, resourceID string, start, end time.Time) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("count(DISTINCT slot_no)").
		From("public.booking_blocks").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count overlapping query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count overlapping failed: %w", err)
	}
	return count, nil
}
