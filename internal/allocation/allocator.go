package allocation

import (
	"context"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
)

// Request is one booking's complete block set: the asset's service window
// plus a crew leg for delivery and one for pickup.
type Request struct {
	BookingID      string
	AssetID        string
	DeliveryCrewID string
	PickupCrewID   string
	ServiceStart   time.Time
	ServiceEnd     time.Time
	DeliveryLeg    availability.Window
	PickupLeg      availability.Window
}

// Allocator turns an availability selection into ledger blocks. The
// pre-check that produced the selection is only an optimization; the
// ledger's per-slot exclusion constraint is the actual guarantee, and
// a concurrent booking between check and write surfaces here as
// ledger.ErrConflict.
type Allocator interface {
	// Reserve writes the asset block and both crew-leg blocks as one
	// all-or-nothing unit. On conflict no blocks remain.
	Reserve(ctx context.Context, req Request) ([]ledger.Block, error)

	// Release removes every block owned by the booking. Idempotent.
	Release(ctx context.Context, bookingID string) error
}

type allocator struct {
	blocks ledger.Repository
}

// NewAllocator creates an Allocator over the block ledger.
func NewAllocator(blocks ledger.Repository) Allocator {
	return &allocator{blocks: blocks}
}

// FromSelection builds a Request from an availability selection.
func FromSelection(bookingID string, sel *availability.Selection) Request {
	return Request{
		BookingID:      bookingID,
		AssetID:        sel.AssetID,
		DeliveryCrewID: sel.DeliveryCrewID,
		PickupCrewID:   sel.PickupCrewID,
		ServiceStart:   sel.ServiceStart,
		ServiceEnd:     sel.ServiceEnd,
		DeliveryLeg:    sel.DeliveryLeg,
		PickupLeg:      sel.PickupLeg,
	}
}

func (a *allocator) Reserve(ctx context.Context, req Request) ([]ledger.Block, error) {
	specs := []ledger.Spec{
		{
			ResourceID: req.AssetID,
			Kind:       ledger.KindEvent,
			Start:      req.ServiceStart,
			End:        req.ServiceEnd,
		},
		{
			ResourceID: req.DeliveryCrewID,
			Kind:       ledger.KindDeliveryLeg,
			Start:      req.DeliveryLeg.Start,
			End:        req.DeliveryLeg.End,
		},
		{
			ResourceID: req.PickupCrewID,
			Kind:       ledger.KindPickupLeg,
			Start:      req.PickupLeg.Start,
			End:        req.PickupLeg.End,
		},
	}

	return a.blocks.ReserveAll(ctx, req.BookingID, specs)
}

func (a *allocator) Release(ctx context.Context, bookingID string) error {
	return a.blocks.Release(ctx, bookingID)
}
