package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var bookingColumns = []string{
	"id", "product_id", "asset_id", "slot_id",
	"event_start", "event_end",
	"delivery_window_start", "delivery_window_end",
	"pickup_window_start", "pickup_window_end",
	"subtotal_cents", "deposit_cents", "balance_due_cents",
	"deposit_paid", "balance_paid",
	"status", "confirmed_at", "delivered_at", "picked_up_at",
	"completed_at", "cancelled_at", "cancel_reason",
	"auto_completed", "auto_complete_reason",
	"refund_status", "refund_amount_cents", "refund_method",
	"created_at", "updated_at",
}

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// Delete physically removes a booking row. Only the allocator's
	// conflict rollback uses this, before the booking was ever visible.
	Delete(ctx context.Context, id string) error

	// DueForAutomation returns confirmed bookings whose delivery window
	// ended before now and delivered bookings whose pickup window ended
	// before now.
	DueForAutomation(ctx context.Context, now time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"product_id", "asset_id", "slot_id",
			"event_start", "event_end",
			"delivery_window_start", "delivery_window_end",
			"pickup_window_start", "pickup_window_end",
			"subtotal_cents", "deposit_cents", "balance_due_cents",
			"deposit_paid", "balance_paid", "status",
		).
		Values(
			b.ProductID, b.AssetID, b.SlotID,
			b.EventStart, b.EventEnd,
			b.DeliveryWindowStart, b.DeliveryWindowEnd,
			b.PickupWindowStart, b.PickupWindowEnd,
			b.SubtotalCents, b.DepositCents, b.BalanceDueCents,
			b.DepositPaid, b.BalancePaid, b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, bookingColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).From("public.bookings")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.ProductID != "" {
		query = query.Where(squirrel.Eq{"product_id": filter.ProductID})
	}
	// Date range filtering (intersection logic)
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"event_end": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"event_start": filter.To})
	}

	query = query.OrderBy("event_start DESC")

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
		b, n, err := scanBookingWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		total = n
		bookings = append(bookings, b)
	}
	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("asset_id", b.AssetID).
		Set("delivery_window_start", b.DeliveryWindowStart).
		Set("delivery_window_end", b.DeliveryWindowEnd).
		Set("pickup_window_start", b.PickupWindowStart).
		Set("pickup_window_end", b.PickupWindowEnd).
		Set("subtotal_cents", b.SubtotalCents).
		Set("deposit_cents", b.DepositCents).
		Set("balance_due_cents", b.BalanceDueCents).
		Set("deposit_paid", b.DepositPaid).
		Set("balance_paid", b.BalancePaid).
		Set("status", b.Status).
		Set("confirmed_at", b.ConfirmedAt).
		Set("delivered_at", b.DeliveredAt).
		Set("picked_up_at", b.PickedUpAt).
		Set("completed_at", b.CompletedAt).
		Set("cancelled_at", b.CancelledAt).
		Set("cancel_reason", b.CancelReason).
		Set("auto_completed", b.AutoCompleted).
		Set("auto_complete_reason", b.AutoCompleteReason).
		Set("refund_status", b.RefundStatus).
		Set("refund_amount_cents", b.RefundAmountCents).
		Set("refund_method", b.RefundMethod).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DueForAutomation(ctx context.Context, now time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"status": StatusConfirmed},
				squirrel.Lt{"delivery_window_end": now},
			},
			squirrel.And{
				squirrel.Eq{"status": StatusDelivered},
				squirrel.Lt{"pickup_window_end": now},
			},
		}).
		OrderBy("event_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build due bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list due bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ProductID, &b.AssetID, &b.SlotID,
		&b.EventStart, &b.EventEnd,
		&b.DeliveryWindowStart, &b.DeliveryWindowEnd,
		&b.PickupWindowStart, &b.PickupWindowEnd,
		&b.SubtotalCents, &b.DepositCents, &b.BalanceDueCents,
		&b.DepositPaid, &b.BalancePaid,
		&b.Status, &b.ConfirmedAt, &b.DeliveredAt, &b.PickedUpAt,
		&b.CompletedAt, &b.CancelledAt, &b.CancelReason,
		&b.AutoCompleted, &b.AutoCompleteReason,
		&b.RefundStatus, &b.RefundAmountCents, &b.RefundMethod,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookingWithTotal(row pgx.Row) (*Booking, int, error) {
	var b Booking
	var total int
	if err := row.Scan(
		&b.ID, &b.ProductID, &b.AssetID, &b.SlotID,
		&b.EventStart, &b.EventEnd,
		&b.DeliveryWindowStart, &b.DeliveryWindowEnd,
		&b.PickupWindowStart, &b.PickupWindowEnd,
		&b.SubtotalCents, &b.DepositCents, &b.BalanceDueCents,
		&b.DepositPaid, &b.BalancePaid,
		&b.Status, &b.ConfirmedAt, &b.DeliveredAt, &b.PickedUpAt,
		&b.CompletedAt, &b.CancelledAt, &b.CancelReason,
		&b.AutoCompleted, &b.AutoCompleteReason,
		&b.RefundStatus, &b.RefundAmountCents, &b.RefundMethod,
		&b.CreatedAt, &b.UpdatedAt, &total,
	); err != nil {
		return nil, 0, err
	}
	return &b, total, nil
}
