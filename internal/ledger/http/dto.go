package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
)

type BlockResponse struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	BookingID  string    `json:"booking_id"`
	Kind       string    `json:"kind"`
	SlotNo     int       `json:"slot_no"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewBlockResponse(b ledger.Block) BlockResponse {
	return BlockResponse{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		BookingID:  b.BookingID,
		Kind:       string(b.Kind),
		SlotNo:     b.SlotNo,
		Start:      b.Start,
		End:        b.End,
		CreatedAt:  b.CreatedAt,
	}
}
