package availability

import (
	"errors"
	"time"
)

var (
	ErrProductInactive = errors.New("product is not active")
	ErrWrongMode       = errors.New("product scheduling mode does not support this query")
	ErrNoActiveSlots   = errors.New("product has no active slots")
	ErrInvalidDates    = errors.New("pickup date cannot be before delivery date")
	ErrNoSelection     = errors.New("no asset and crew combination is free for the requested window")
)

// Reason explains why a window is unavailable. Callers distinguish these
// for UX and operational reporting; they are stable API values.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonLeadTime      Reason = "lead_time"
	ReasonAssetCapacity Reason = "insufficient_asset_capacity"
	ReasonCrewCapacity  Reason = "insufficient_crew_capacity"
)

// Window is a half-open [Start, End) time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// SlotAvailability is the per-slot result of a slot-based availability query.
type SlotAvailability struct {
	SlotID       string
	Label        string
	EventStart   time.Time
	EventEnd     time.Time
	ServiceStart time.Time
	ServiceEnd   time.Time
	Available    bool
	Reason       Reason
}

// DayRentalAvailability is the result of a day-rental availability query.
type DayRentalAvailability struct {
	Available    bool
	Reason       Reason
	EventStart   time.Time
	EventEnd     time.Time
	ServiceStart time.Time
	ServiceEnd   time.Time

	// SameDayPickupPossible reports whether an evening pickup crew is free
	// on the delivery date. Same-day pickup must not be offered without it,
	// even when the asset and the delivery-leg crew are free.
	SameDayPickupPossible bool
}

// Selection is a concrete (asset, crews, windows) choice made right before
// allocation. It is a snapshot, not a reservation: only the ledger write
// that follows can claim the resources.
type Selection struct {
	AssetID        string
	DeliveryCrewID string
	PickupCrewID   string

	EventStart   time.Time
	EventEnd     time.Time
	ServiceStart time.Time
	ServiceEnd   time.Time
	DeliveryLeg  Window
	PickupLeg    Window
}

// RuleKind names the date-gating rule that rejected a request.
type RuleKind string

const (
	RuleCutoff   RuleKind = "cutoff"
	RuleLeadTime RuleKind = "lead_time"
)

// DateRuleError is returned when a requested date is rejected by a business
// rule rather than by resource capacity. It carries the earliest date the
// caller could pick instead.
type DateRuleError struct {
	Rule              RuleKind
	Message           string
	EarliestAvailable time.Time
}

func (e *DateRuleError) Error() string {
	return e.Message
}

// IsCutoffViolation reports whether err is a cutoff DateRuleError.
func IsCutoffViolation(err error) bool {
	var dre *DateRuleError
	return errors.As(err, &dre) && dre.Rule == RuleCutoff
}

// IsLeadTimeViolation reports whether err is a lead-time DateRuleError.
func IsLeadTimeViolation(err error) bool {
	var dre *DateRuleError
	return errors.As(err, &dre) && dre.Rule == RuleLeadTime
}
