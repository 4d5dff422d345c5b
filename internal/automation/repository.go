package automation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LogRepository is the append-only automation audit log.
type LogRepository interface {
	Append(ctx context.Context, entry *LogEntry) error
	ListForBooking(ctx context.Context, bookingID string) ([]*LogEntry, error)
}

type pgxLogRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLogRepository creates a new LogRepository implementation using pgxpool.
func NewPgxLogRepository(pool *pgxpool.Pool) LogRepository {
	return &pgxLogRepository{pool: pool}
}

func (r *pgxLogRepository) Append(ctx context.Context, entry *LogEntry) error {
	detail := entry.Detail
	if detail == nil {
		detail = map[string]any{}
	}
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal log detail failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.automation_logs").
		Columns("booking_id", "action", "detail", "success", "error").
		Values(entry.BookingID, entry.Action, payload, entry.Success, entry.Error).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build append query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("append automation log failed: %w", err)
	}
	return nil
}

func (r *pgxLogRepository) ListForBooking(ctx context.Context, bookingID string) ([]*LogEntry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "booking_id", "action", "detail", "success", "error", "created_at").
		From("public.automation_logs").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query automation logs failed: %w", err)
	}
	defer rows.Close()

	var entries []*LogEntry
	for rows.Next() {
		var entry LogEntry
		var detail []byte
		if err := rows.Scan(
			&entry.ID, &entry.BookingID, &entry.Action, &detail,
			&entry.Success, &entry.Error, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan automation log failed: %w", err)
		}
		if err := json.Unmarshal(detail, &entry.Detail); err != nil {
			return nil, fmt.Errorf("unmarshal log detail failed: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
