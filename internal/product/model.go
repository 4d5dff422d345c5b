package product

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrInvalidMode     = errors.New("invalid scheduling mode")
	ErrInvalidSlotTime = errors.New("slot start must be before slot end")
	ErrSlotNotFound    = errors.New("slot not found")
	ErrNoActiveSlots   = errors.New("slot-based product must have at least one active slot")
)

// SchedulingMode determines how availability is computed for a product.
type SchedulingMode string

const (
	ModeSlotBased SchedulingMode = "slot_based"
	ModeDayRental SchedulingMode = "day_rental"
)

// Product is a rentable product type. Physical units are tracked separately
// as assets in the resource catalog.
type Product struct {
	ID             string
	Name           string
	SchedulingMode SchedulingMode

	// Duration parameters in minutes. Together with a slot's event window
	// they define the full service window an asset is reserved for.
	SetupMinutes        int
	TeardownMinutes     int
	TravelBufferMinutes int
	CleaningMinutes     int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Slots []Slot
}

// Slot is a fixed bookable window for slot-based products,
// expressed as local wall-clock times in the business timezone.
type Slot struct {
	ID         string
	ProductID  string
	Label      string
	StartLocal string // "15:04"
	EndLocal   string // "15:04"
	IsActive   bool
	CreatedAt  time.Time
}

// ActiveSlots returns the product's active slots.
func (p *Product) ActiveSlots() []Slot {
	var out []Slot
	for _, s := range p.Slots {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

// SetupLead is the duration reserved before the event window (travel + setup).
func (p *Product) SetupLead() time.Duration {
	return time.Duration(p.TravelBufferMinutes+p.SetupMinutes) * time.Minute
}

// TeardownTail is the duration reserved after the event window
// (teardown + travel + cleaning).
func (p *Product) TeardownTail() time.Duration {
	return time.Duration(p.TeardownMinutes+p.TravelBufferMinutes+p.CleaningMinutes) * time.Minute
}

// TravelBuffer returns the travel buffer as a duration.
func (p *Product) TravelBuffer() time.Duration {
	return time.Duration(p.TravelBufferMinutes) * time.Minute
}
