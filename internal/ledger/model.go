package ledger

import (
	"net/http"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/apperror"
)

var (
	// ErrConflict means the storage-level exclusion constraint rejected a
	// reservation: some overlapping block for the same resource already
	// exists. Callers must re-run availability, not retry the write.
	ErrConflict = apperror.Conflict("resource is no longer available for the requested time")

	ErrInvalidRange = apperror.BadRequest("block start must be before block end")
	ErrNotFound     = apperror.NotFound("block not found")
)

// ErrEmptySpec is returned when a reservation is attempted with no blocks.
var ErrEmptySpec = apperror.New(http.StatusBadRequest, "no blocks to reserve")

// Kind describes what a reserved block represents.
type Kind string

const (
	// KindEvent is the asset's full service window, buffers included.
	KindEvent Kind = "event"
	// KindDeliveryLeg is a crew's outbound job for one booking.
	KindDeliveryLeg Kind = "delivery_leg"
	// KindPickupLeg is a crew's return job for one booking.
	KindPickupLeg Kind = "pickup_leg"
	// KindCleaningBuffer reserves an asset for post-rental cleaning
	// when cleaning happens outside the service window.
	KindCleaningBuffer Kind = "cleaning_buffer"
)

// Block is an immutable time reservation on a single resource. Blocks are
// never updated in place; a changed reservation is released and re-reserved.
// SlotNo is the concurrency slot the block occupies: a resource with
// capacity N has slots 0..N-1, and the exclusion constraint forbids
// overlap per (resource, slot), so a capacity-2 crew can hold two
// concurrent jobs without tripping it.
type Block struct {
	ID         string
	ResourceID string
	BookingID  string
	Kind       Kind
	SlotNo     int
	Start      time.Time
	End        time.Time
	CreatedAt  time.Time
}

// lowestFreeSlot picks the smallest slot number in [0, capacity) not in
// occupied. Returns false when every slot is taken.
func lowestFreeSlot(occupied []int, capacity int) (int, bool) {
	taken := make(map[int]bool, len(occupied))
	for _, n := range occupied {
		taken[n] = true
	}
	for n := 0; n < capacity; n++ {
		if !taken[n] {
			return n, true
		}
	}
	return 0, false
}

// Spec describes one block to reserve.
type Spec struct {
	ResourceID string
	Kind       Kind
	Start      time.Time
	End        time.Time
}

// Validate checks the spec's time range.
func (s Spec) Validate() error {
	if !s.Start.Before(s.End) {
		return ErrInvalidRange
	}
	return nil
}
