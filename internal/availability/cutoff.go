package availability

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// Policy holds the business scheduling rules. All cutoff decisions are made
// in the business's fixed timezone regardless of the client's locale: the
// cutoff encodes an operational promise to staff, not a UX nicety.
type Policy struct {
	Location   *time.Location
	LeadTime   time.Duration
	CutoffHour int
}

// beginningOfDay truncates an instant to midnight in the policy timezone.
func (p Policy) beginningOfDay(t time.Time) time.Time {
	return now.With(t.In(p.Location)).BeginningOfDay()
}

// calendarDate projects a caller-supplied calendar date onto business-
// timezone midnight. The value's own zone is ignored: a requested date is
// a calendar day, not an instant.
func (p Policy) calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.Location)
}

// EarliestBookableDate returns the first date (midnight, business timezone)
// that passes the cutoff rule at the given instant.
func (p Policy) EarliestBookableDate(at time.Time) time.Time {
	today := p.beginningOfDay(at)
	if at.In(p.Location).Hour() >= p.CutoffHour {
		// Next-day window has closed for today; the day after is the first option.
		return today.AddDate(0, 0, 2)
	}
	return today.AddDate(0, 0, 1)
}

// CheckCutoff validates a requested event date against the cutoff rule.
// Same-day requests are always rejected; next-day requests are rejected at
// or past the cutoff hour. Violations carry the earliest valid date.
func (p Policy) CheckCutoff(at, eventDate time.Time) error {
	today := p.beginningOfDay(at)
	requested := p.calendarDate(eventDate)
	earliest := p.EarliestBookableDate(at)

	if !requested.After(today) {
		return &DateRuleError{
			Rule:              RuleCutoff,
			Message:           "same-day bookings are not accepted",
			EarliestAvailable: earliest,
		}
	}

	tomorrow := today.AddDate(0, 0, 1)
	if requested.Equal(tomorrow) && at.In(p.Location).Hour() >= p.CutoffHour {
		return &DateRuleError{
			Rule:              RuleCutoff,
			Message:           fmt.Sprintf("next-day bookings close at %02d:00", p.CutoffHour),
			EarliestAvailable: earliest,
		}
	}

	return nil
}

// CheckLeadTime validates an event start against the minimum lead time.
func (p Policy) CheckLeadTime(at, eventStart time.Time) error {
	if eventStart.Before(at.Add(p.LeadTime)) {
		return &DateRuleError{
			Rule:              RuleLeadTime,
			Message:           fmt.Sprintf("bookings require at least %s of lead time", p.LeadTime),
			EarliestAvailable: p.beginningOfDay(at.Add(p.LeadTime)),
		}
	}
	return nil
}

// meetsLeadTime is the boolean form of CheckLeadTime for per-slot scans.
func (p Policy) meetsLeadTime(at, eventStart time.Time) bool {
	return !eventStart.Before(at.Add(p.LeadTime))
}
