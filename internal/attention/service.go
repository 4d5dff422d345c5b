package attention

import (
	"context"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
)

// bookingLookup is the slice of the booking module the attention service
// needs: payment state for building suggested actions.
type bookingLookup interface {
	GetByID(ctx context.Context, id string) (*booking.Booking, error)
}

type Service interface {
	// Flag raises an item for a booking. A duplicate pending item of the
	// same (booking, type) is suppressed; the existing item is returned
	// with suppressed = true.
	Flag(ctx context.Context, bookingID string, t Type, priority Priority, note string) (*Item, bool, error)

	GetByID(ctx context.Context, id string) (*Item, error)
	ListPending(ctx context.Context) ([]*Item, error)
	ListForBooking(ctx context.Context, bookingID string) ([]*Item, error)
	CountsByPriority(ctx context.Context) (map[Priority]int, error)

	// Start moves a pending item to in-progress so other operators can
	// see it is being worked.
	Start(ctx context.Context, id, operatorID string) (*Item, error)

	// Resolve closes an open item with the action the operator took.
	Resolve(ctx context.Context, id, resolvedBy, action, notes string) (*Item, error)

	// Dismiss closes an open item without acting on it. A reason is
	// required.
	Dismiss(ctx context.Context, id, dismissedBy, reason string) (*Item, error)

	// ResolveForBooking closes every open item of a booking, returning
	// how many were closed. Used when automation or cancellation makes
	// the items moot.
	ResolveForBooking(ctx context.Context, bookingID, action string) (int, error)
}

type service struct {
	repo     Repository
	bookings bookingLookup

	now func() time.Time
}

func NewService(repo Repository, bookings bookingLookup) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *service) Flag(ctx context.Context, bookingID string, t Type, priority Priority, note string) (*Item, bool, error) {
	if !validTypes[t] {
		return nil, false, ErrUnknownType
	}
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
	default:
		return nil, false, ErrInvalidInput
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, false, err
	}

	item := &Item{
		BookingID: bookingID,
		Type:      t,
		Priority:  priority,
		Status:    StatusPending,
		SuggestedActions: SuggestActions(t, ActionContext{
			PaidInFull:      b.PaidInFull(),
			BalanceDueCents: b.BalanceDueCents,
		}),
	}
	if note != "" {
		n := note
		item.Note = &n
	}

	suppressed, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, false, err
	}
	return item, suppressed, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListPending(ctx context.Context) ([]*Item, error) {
	return s.repo.ListPending(ctx)
}

func (s *service) ListForBooking(ctx context.Context, bookingID string) ([]*Item, error) {
	return s.repo.ListForBooking(ctx, bookingID)
}

func (s *service) CountsByPriority(ctx context.Context) (map[Priority]int, error) {
	return s.repo.CountsByPriority(ctx)
}

func (s *service) Start(ctx context.Context, id, operatorID string) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Status != StatusPending {
		return nil, ErrNotPending
	}

	item.Status = StatusInProgress
	op := operatorID
	item.StartedBy = &op
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) Resolve(ctx context.Context, id, resolvedBy, action, notes string) (*Item, error) {
	if action == "" {
		return nil, ErrInvalidInput
	}
	return s.close(ctx, id, StatusResolved, resolvedBy, action, notes)
}

func (s *service) Dismiss(ctx context.Context, id, dismissedBy, reason string) (*Item, error) {
	if reason == "" {
		return nil, ErrNeedsReason
	}
	return s.close(ctx, id, StatusDismissed, dismissedBy, "dismissed", reason)
}

func (s *service) close(ctx context.Context, id string, status Status, by, action, notes string) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsOpen() {
		return nil, ErrNotPending
	}

	at := s.now().UTC()
	item.Status = status
	item.ResolvedBy = &by
	item.ResolvedAction = &action
	item.ResolvedAt = &at
	if notes != "" {
		n := notes
		item.ResolutionNotes = &n
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ResolveForBooking(ctx context.Context, bookingID, action string) (int, error) {
	return s.repo.ResolvePendingForBooking(ctx, bookingID, action)
}
