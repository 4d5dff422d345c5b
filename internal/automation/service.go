package automation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/attention"
	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
)

// Service is the automation processor. It is invoked by an external
// scheduler (or the in-process ticker) and tolerates being invoked more
// often than necessary: a second run over an unchanged booking set
// creates no duplicate attention items and no duplicate completions.
type Service interface {
	// Run scans in-flight bookings whose windows have elapsed and either
	// auto-advances them or raises attention items. One booking's
	// failure never aborts the rest of the batch.
	Run(ctx context.Context) (RunResult, error)

	LogsForBooking(ctx context.Context, bookingID string) ([]*LogEntry, error)
}

type service struct {
	bookings  booking.Repository
	attention attention.Service
	logs      LogRepository

	deliveryGrace time.Duration
	pickupGrace   time.Duration

	now func() time.Time
}

func NewService(
	bookings booking.Repository,
	attn attention.Service,
	logs LogRepository,
	deliveryGrace, pickupGrace time.Duration,
) Service {
	return &service{
		bookings:      bookings,
		attention:     attn,
		logs:          logs,
		deliveryGrace: deliveryGrace,
		pickupGrace:   pickupGrace,
		now:           time.Now,
	}
}

func (s *service) Run(ctx context.Context) (RunResult, error) {
	var result RunResult
	now := s.now().UTC()

	due, err := s.bookings.DueForAutomation(ctx, now)
	if err != nil {
		return result, fmt.Errorf("scan bookings due for automation failed: %w", err)
	}

	for _, b := range due {
		result.Processed++
		if err := s.process(ctx, b, now, &result); err != nil {
			result.Errors++
			msg := err.Error()
			s.append(ctx, &LogEntry{
				BookingID: &b.ID,
				Action:    ActionFailed,
				Detail:    map[string]any{"status": string(b.Status)},
				Success:   false,
				Error:     &msg,
			})
		}
	}
	return result, nil
}

func (s *service) LogsForBooking(ctx context.Context, bookingID string) ([]*LogEntry, error) {
	return s.logs.ListForBooking(ctx, bookingID)
}

func (s *service) process(ctx context.Context, b *booking.Booking, now time.Time, result *RunResult) error {
	switch b.Status {
	case booking.StatusConfirmed:
		// Delivery never auto-advances; a human must confirm the goods
		// physically arrived.
		if now.Before(b.DeliveryWindowEnd.Add(s.deliveryGrace)) {
			return nil
		}
		priority := attention.PriorityMedium
		if b.PaidInFull() {
			priority = attention.PriorityLow
		}
		return s.raise(ctx, b, attention.TypeDeliveryConfirmation, priority,
			"delivery window elapsed without confirmation", result)

	case booking.StatusDelivered:
		if !b.PaidInFull() {
			return s.raise(ctx, b, attention.TypePaymentCollection, attention.PriorityHigh,
				"balance outstanding after delivery", result)
		}
		if now.Before(b.PickupWindowEnd.Add(s.pickupGrace)) {
			return nil
		}
		return s.autoComplete(ctx, b.ID, now, result)
	}
	return nil
}

// autoComplete re-verifies its preconditions against a fresh read. The
// batch scan is a snapshot; an operator may have recorded a refund or a
// cancellation since.
func (s *service) autoComplete(ctx context.Context, bookingID string, now time.Time, result *RunResult) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.Status != booking.StatusDelivered || !b.PaidInFull() ||
		now.Before(b.PickupWindowEnd.Add(s.pickupGrace)) {
		s.append(ctx, &LogEntry{
			BookingID: &b.ID,
			Action:    ActionSkipped,
			Detail: map[string]any{
				"status":       string(b.Status),
				"paid_in_full": b.PaidInFull(),
			},
			Success: true,
		})
		return nil
	}

	// Auto-completion walks the same transition table as manual
	// operation: delivered to picked_up to completed.
	if err := b.Transition(booking.StatusPickedUp, now); err != nil {
		return err
	}
	if err := b.Transition(booking.StatusCompleted, now); err != nil {
		return err
	}
	b.AutoCompleted = true
	reason := "pickup window elapsed with booking paid in full"
	b.AutoCompleteReason = &reason

	if err := s.bookings.Update(ctx, b); err != nil {
		return err
	}

	resolved, err := s.attention.ResolveForBooking(ctx, b.ID, "auto_completed")
	if err != nil {
		// The booking is already completed; the stale items are an
		// operator inconvenience, not a correctness problem.
		log.Printf("resolving attention items for auto-completed booking %s failed: %v", b.ID, err)
	}

	result.AutoCompleted++
	s.append(ctx, &LogEntry{
		BookingID: &b.ID,
		Action:    ActionAutoCompleted,
		Detail: map[string]any{
			"reason":             reason,
			"attention_resolved": resolved,
		},
		Success: true,
	})
	return nil
}

func (s *service) raise(
	ctx context.Context,
	b *booking.Booking,
	t attention.Type,
	priority attention.Priority,
	note string,
	result *RunResult,
) error {
	item, suppressed, err := s.attention.Flag(ctx, b.ID, t, priority, note)
	if err != nil {
		return err
	}

	action := ActionAttentionCreated
	if suppressed {
		action = ActionAttentionSuppressed
	} else {
		result.AttentionCreated++
	}
	s.append(ctx, &LogEntry{
		BookingID: &b.ID,
		Action:    action,
		Detail: map[string]any{
			"item_id":  item.ID,
			"type":     string(t),
			"priority": string(priority),
		},
		Success: true,
	})
	return nil
}

// append writes an audit entry. Audit failures are logged but never fail
// the run; losing one audit row is better than losing the batch.
func (s *service) append(ctx context.Context, entry *LogEntry) {
	if err := s.logs.Append(ctx, entry); err != nil {
		log.Printf("append automation log failed: %v", err)
	}
}
