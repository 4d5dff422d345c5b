package booking

import (
	"net/http"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.NotFound("booking not found")
	ErrInvalidTransition = apperror.New(http.StatusUnprocessableEntity, "invalid booking status transition")
	ErrCancelNeedsReason = apperror.BadRequest("cancellation requires a reason")
	ErrInvalidRefund     = apperror.BadRequest("refund amount cannot be negative or exceed the amount paid")
	ErrProductNotFound   = apperror.NotFound("product not found")
	ErrInvalidInput      = apperror.BadRequest("invalid input parameters")
)

// Status is a booking's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusPickedUp  Status = "picked_up"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the complete legal transition table. Completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

// RefundStatus tracks the refund decision independently of booking status.
type RefundStatus string

const (
	RefundNone      RefundStatus = "none"
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
)

// Booking is a customer reservation of one asset plus crew legs. Rows are
// never deleted; cancellation is a terminal status, not a removal.
type Booking struct {
	ID        string
	ProductID string
	AssetID   *string
	SlotID    *string

	EventStart          time.Time
	EventEnd            time.Time
	DeliveryWindowStart time.Time
	DeliveryWindowEnd   time.Time
	PickupWindowStart   time.Time
	PickupWindowEnd     time.Time

	SubtotalCents   int64
	DepositCents    int64
	BalanceDueCents int64
	DepositPaid     bool
	BalancePaid     bool

	Status       Status
	ConfirmedAt  *time.Time
	DeliveredAt  *time.Time
	PickedUpAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason *string

	AutoCompleted      bool
	AutoCompleteReason *string

	RefundStatus      RefundStatus
	RefundAmountCents int64
	RefundMethod      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransition reports whether moving to the target status is legal.
func (b *Booking) CanTransition(to Status) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the booking to the target status and stamps the
// corresponding timestamp the first time that status is entered. An
// illegal transition returns ErrInvalidTransition and changes nothing.
func (b *Booking) Transition(to Status, at time.Time) error {
	if !b.CanTransition(to) {
		return ErrInvalidTransition
	}

	b.Status = to
	stamp := func(field **time.Time) {
		if *field == nil {
			t := at
			*field = &t
		}
	}

	switch to {
	case StatusConfirmed:
		stamp(&b.ConfirmedAt)
	case StatusDelivered:
		stamp(&b.DeliveredAt)
	case StatusPickedUp:
		stamp(&b.PickedUpAt)
	case StatusCompleted:
		stamp(&b.CompletedAt)
	case StatusCancelled:
		stamp(&b.CancelledAt)
	}
	return nil
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return len(transitions[b.Status]) == 0
}

// PaidInFull reports whether the booking is fully paid: deposit collected
// and either the balance collected or nothing left to collect.
func (b *Booking) PaidInFull() bool {
	return b.DepositPaid && (b.BalancePaid || b.BalanceDueCents == 0)
}

// AmountPaidCents is the total the customer has actually paid so far.
func (b *Booking) AmountPaidCents() int64 {
	var paid int64
	if b.DepositPaid {
		paid += b.DepositCents
	}
	if b.BalancePaid {
		paid += b.SubtotalCents - b.DepositCents
	}
	return paid
}

// Filter defines parameters for listing bookings.
type Filter struct {
	Status    string
	ProductID string
	From      *time.Time // bookings whose event ends after this time
	To        *time.Time // bookings whose event starts before this time
	Page      int
	PageSize  int
}
