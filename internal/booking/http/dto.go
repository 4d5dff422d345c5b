package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
)

type CreateBookingRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`

	// Slot-based products.
	SlotID    string `json:"slot_id" binding:"omitempty,uuid"`
	EventDate string `json:"event_date" binding:"omitempty,datetime=2006-01-02"`

	// Day-rental products.
	DeliveryDate string `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
	PickupDate   string `json:"pickup_date" binding:"omitempty,datetime=2006-01-02"`

	SubtotalCents int64 `json:"subtotal_cents" binding:"min=0"`
	DepositCents  int64 `json:"deposit_cents" binding:"min=0"`
	DepositPaid   bool  `json:"deposit_paid"`
}

type CancelBookingRequest struct {
	Reason            string `json:"reason" binding:"required"`
	RefundAmountCents int64  `json:"refund_amount_cents" binding:"min=0"`
	RefundMethod      string `json:"refund_method"`
}

type RecordPaymentRequest struct {
	Kind string `json:"kind" binding:"required,oneof=deposit balance"`
}

type BookingResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	AssetID   *string `json:"asset_id"`
	SlotID    *string `json:"slot_id,omitempty"`

	EventStart          time.Time `json:"event_start"`
	EventEnd            time.Time `json:"event_end"`
	DeliveryWindowStart time.Time `json:"delivery_window_start"`
	DeliveryWindowEnd   time.Time `json:"delivery_window_end"`
	PickupWindowStart   time.Time `json:"pickup_window_start"`
	PickupWindowEnd     time.Time `json:"pickup_window_end"`

	SubtotalCents   int64 `json:"subtotal_cents"`
	DepositCents    int64 `json:"deposit_cents"`
	BalanceDueCents int64 `json:"balance_due_cents"`
	DepositPaid     bool  `json:"deposit_paid"`
	BalancePaid     bool  `json:"balance_paid"`
	PaidInFull      bool  `json:"paid_in_full"`

	Status       string     `json:"status"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason *string    `json:"cancel_reason,omitempty"`

	AutoCompleted      bool    `json:"auto_completed"`
	AutoCompleteReason *string `json:"auto_complete_reason,omitempty"`

	RefundStatus      string  `json:"refund_status"`
	RefundAmountCents int64   `json:"refund_amount_cents"`
	RefundMethod      *string `json:"refund_method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		ProductID:           b.ProductID,
		AssetID:             b.AssetID,
		SlotID:              b.SlotID,
		EventStart:          b.EventStart,
		EventEnd:            b.EventEnd,
		DeliveryWindowStart: b.DeliveryWindowStart,
		DeliveryWindowEnd:   b.DeliveryWindowEnd,
		PickupWindowStart:   b.PickupWindowStart,
		PickupWindowEnd:     b.PickupWindowEnd,
		SubtotalCents:       b.SubtotalCents,
		DepositCents:        b.DepositCents,
		BalanceDueCents:     b.BalanceDueCents,
		DepositPaid:         b.DepositPaid,
		BalancePaid:         b.BalancePaid,
		PaidInFull:          b.PaidInFull(),
		Status:              string(b.Status),
		ConfirmedAt:         b.ConfirmedAt,
		DeliveredAt:         b.DeliveredAt,
		PickedUpAt:          b.PickedUpAt,
		CompletedAt:         b.CompletedAt,
		CancelledAt:         b.CancelledAt,
		CancelReason:        b.CancelReason,
		AutoCompleted:       b.AutoCompleted,
		AutoCompleteReason:  b.AutoCompleteReason,
		RefundStatus:        string(b.RefundStatus),
		RefundAmountCents:   b.RefundAmountCents,
		RefundMethod:        b.RefundMethod,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}
