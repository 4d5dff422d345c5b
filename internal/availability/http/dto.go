package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
)

type SlotAvailabilityResponse struct {
	SlotID       string    `json:"slot_id"`
	Label        string    `json:"label"`
	EventStart   time.Time `json:"event_start"`
	EventEnd     time.Time `json:"event_end"`
	ServiceStart time.Time `json:"service_start"`
	ServiceEnd   time.Time `json:"service_end"`
	Available    bool      `json:"available"`
	Reason       string    `json:"reason,omitempty"`
}

type DayRentalAvailabilityResponse struct {
	Available             bool      `json:"available"`
	Reason                string    `json:"reason,omitempty"`
	EventStart            time.Time `json:"event_start"`
	EventEnd              time.Time `json:"event_end"`
	ServiceStart          time.Time `json:"service_start"`
	ServiceEnd            time.Time `json:"service_end"`
	SameDayPickupPossible bool      `json:"same_day_pickup_possible"`
}

type DateRuleErrorResponse struct {
	Error             string `json:"error"`
	Rule              string `json:"rule"`
	EarliestAvailable string `json:"earliest_available"`
}

func NewSlotAvailabilityResponse(sa availability.SlotAvailability) SlotAvailabilityResponse {
	return SlotAvailabilityResponse{
		SlotID:       sa.SlotID,
		Label:        sa.Label,
		EventStart:   sa.EventStart,
		EventEnd:     sa.EventEnd,
		ServiceStart: sa.ServiceStart,
		ServiceEnd:   sa.ServiceEnd,
		Available:    sa.Available,
		Reason:       string(sa.Reason),
	}
}

func NewDayRentalAvailabilityResponse(dr *availability.DayRentalAvailability) DayRentalAvailabilityResponse {
	return DayRentalAvailabilityResponse{
		Available:             dr.Available,
		Reason:                string(dr.Reason),
		EventStart:            dr.EventStart,
		EventEnd:              dr.EventEnd,
		ServiceStart:          dr.ServiceStart,
		ServiceEnd:            dr.ServiceEnd,
		SameDayPickupPossible: dr.SameDayPickupPossible,
	}
}

func NewDateRuleErrorResponse(e *availability.DateRuleError) DateRuleErrorResponse {
	return DateRuleErrorResponse{
		Error:             e.Message,
		Rule:              string(e.Rule),
		EarliestAvailable: e.EarliestAvailable.Format("2006-01-02"),
	}
}
