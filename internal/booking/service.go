package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/allocation"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	"github.com/sunpeak-rentals/scheduling-backend/internal/payment"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type CreateRequest struct {
	ProductID string

	// Slot-based bookings set SlotID and EventDate.
	SlotID    string
	EventDate time.Time

	// Day-rental bookings set DeliveryDate and PickupDate.
	DeliveryDate time.Time
	PickupDate   time.Time

	SubtotalCents int64
	DepositCents  int64
	DepositPaid   bool
}

type CancelRequest struct {
	Reason            string
	RefundAmountCents int64
	RefundMethod      string
}

type Service interface {
	// Create runs the final availability check, writes the booking and its
	// ledger blocks atomically per resource, and confirms the booking.
	// A concurrent competitor winning the ledger race surfaces as
	// ledger.ErrConflict with no partial blocks left behind.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// MarkDelivered and MarkPickedUp record physical confirmation by staff.
	MarkDelivered(ctx context.Context, id string) (*Booking, error)
	MarkPickedUp(ctx context.Context, id string) (*Booking, error)
	// Complete closes out a picked-up booking.
	Complete(ctx context.Context, id string) (*Booking, error)

	// Cancel terminates a booking with a reason and a refund decision,
	// releasing its ledger blocks. Safe to retry.
	Cancel(ctx context.Context, id string, req CancelRequest) (*Booking, error)

	// RecordPayment marks the deposit or the balance as collected.
	RecordPayment(ctx context.Context, id, kind string) (*Booking, error)

	// RefreshPaymentStatus pulls the provider's view of the booking's
	// paid state and records it.
	RefreshPaymentStatus(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo      Repository
	products  product.Service
	availsvc  availability.Service
	allocator allocation.Allocator
	payments  payment.Provider

	now func() time.Time
}

func NewService(
	repo Repository,
	products product.Service,
	availsvc availability.Service,
	allocator allocation.Allocator,
	payments payment.Provider,
) Service {
	return &service{
		repo:      repo,
		products:  products,
		availsvc:  availsvc,
		allocator: allocator,
		payments:  payments,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	p, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if req.SubtotalCents < 0 || req.DepositCents < 0 || req.DepositCents > req.SubtotalCents {
		return nil, ErrInvalidInput
	}

	// Final availability check; picks the concrete asset and crews.
	var sel *availability.Selection
	var slotID *string
	switch p.SchedulingMode {
	case product.ModeSlotBased:
		if req.SlotID == "" {
			return nil, ErrInvalidInput
		}
		sel, err = s.availsvc.SelectForSlot(ctx, req.ProductID, req.SlotID, req.EventDate)
		sid := req.SlotID
		slotID = &sid
	case product.ModeDayRental:
		sel, err = s.availsvc.SelectForDayRental(ctx, req.ProductID, req.DeliveryDate, req.PickupDate)
	default:
		return nil, ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	assetID := sel.AssetID
	b := &Booking{
		ProductID:           req.ProductID,
		AssetID:             &assetID,
		SlotID:              slotID,
		EventStart:          sel.EventStart,
		EventEnd:            sel.EventEnd,
		DeliveryWindowStart: sel.DeliveryLeg.Start,
		DeliveryWindowEnd:   sel.DeliveryLeg.End,
		PickupWindowStart:   sel.PickupLeg.Start,
		PickupWindowEnd:     sel.PickupLeg.End,
		SubtotalCents:       req.SubtotalCents,
		DepositCents:        req.DepositCents,
		BalanceDueCents:     req.SubtotalCents - req.DepositCents,
		DepositPaid:         req.DepositPaid,
		Status:              StatusPending,
		RefundStatus:        RefundNone,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// The ledger write is the actual correctness guarantee; the selection
	// above was only a snapshot. On conflict the booking row is removed
	// so nothing ever points at unreserved resources.
	if _, err := s.allocator.Reserve(ctx, allocation.FromSelection(b.ID, sel)); err != nil {
		if delErr := s.repo.Delete(ctx, b.ID); delErr != nil {
			log.Printf("failed to remove booking %s after allocation conflict: %v", b.ID, delErr)
		}
		return nil, err
	}

	if err := b.Transition(StatusConfirmed, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		// Same cleanup as the conflict branch: a pending row must never
		// keep live blocks.
		if relErr := s.allocator.Release(ctx, b.ID); relErr != nil {
			log.Printf("failed to release blocks for booking %s after confirm failure: %v", b.ID, relErr)
		}
		if delErr := s.repo.Delete(ctx, b.ID); delErr != nil {
			log.Printf("failed to remove booking %s after confirm failure: %v", b.ID, delErr)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkDelivered(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusDelivered)
}

func (s *service) MarkPickedUp(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusPickedUp)
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusCompleted)
}

func (s *service) transition(ctx context.Context, id string, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Transition(to, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string, req CancelRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Retrying a cancellation only needs the block release to converge.
	if b.Status == StatusCancelled {
		if err := s.allocator.Release(ctx, b.ID); err != nil {
			return nil, err
		}
		return b, nil
	}

	if req.Reason == "" {
		return nil, ErrCancelNeedsReason
	}
	if req.RefundAmountCents < 0 || req.RefundAmountCents > b.AmountPaidCents() {
		return nil, ErrInvalidRefund
	}

	if err := b.Transition(StatusCancelled, s.now().UTC()); err != nil {
		return nil, err
	}
	reason := req.Reason
	b.CancelReason = &reason

	if req.RefundAmountCents > 0 {
		b.RefundAmountCents = req.RefundAmountCents
		if req.RefundMethod != "" {
			m := req.RefundMethod
			b.RefundMethod = &m
		}

		result, err := s.payments.Refund(ctx, payment.RefundRequest{
			BookingID:   b.ID,
			AmountCents: req.RefundAmountCents,
			Method:      req.RefundMethod,
		})
		if err != nil {
			// Refund failures never block cancellation; the refund stays
			// queued for manual settlement.
			log.Printf("refund for booking %s failed, marked pending: %v", b.ID, err)
			b.RefundStatus = RefundPending
		} else if result.Processed {
			b.RefundStatus = RefundProcessed
		} else {
			b.RefundStatus = RefundPending
		}
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err := s.allocator.Release(ctx, b.ID); err != nil {
		return nil, fmt.Errorf("booking cancelled but block release failed (retry cancel): %w", err)
	}
	return b, nil
}

func (s *service) RecordPayment(ctx context.Context, id, kind string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "deposit":
		b.DepositPaid = true
	case "balance":
		b.BalancePaid = true
		b.BalanceDueCents = 0
	default:
		return nil, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) RefreshPaymentStatus(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := s.payments.PaidStatus(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("payment provider lookup failed: %w", err)
	}

	b.BalanceDueCents = status.BalanceDueCents
	if status.PaidInFull {
		b.DepositPaid = true
		b.BalancePaid = true
		b.BalanceDueCents = 0
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
