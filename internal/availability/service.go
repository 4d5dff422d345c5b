package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
	"github.com/sunpeak-rentals/scheduling-backend/internal/resource"
)

// Day-rental timing policy. Delivery happens in the morning window starting
// at 09:00; multi-day rentals are picked up at 10:00; same-day rentals run
// to 18:00 with an evening pickup leg that must finish by 20:30.
const (
	dayRentalDeliveryHour = 9
	dayRentalSameDayEnd   = 18
	dayRentalPickupHour   = 10

	eveningLegStartHour   = 18
	eveningLegEndHour     = 20
	eveningLegEndMinute   = 30
)

// Service answers "can this product be booked at this time" questions.
// All methods are pure reads over the catalog and the block ledger: a
// positive answer reserves nothing, and staleness between a check and the
// subsequent allocation is expected and absorbed by the allocator's
// conflict path.
type Service interface {
	CheckSlots(ctx context.Context, productID string, date time.Time) ([]SlotAvailability, error)
	CheckDayRental(ctx context.Context, productID string, deliveryDate, pickupDate time.Time) (*DayRentalAvailability, error)

	// SelectForSlot re-runs the slot check and picks a concrete asset and
	// crew pair for allocation.
	SelectForSlot(ctx context.Context, productID, slotID string, date time.Time) (*Selection, error)
	// SelectForDayRental does the same for day-rental bookings.
	SelectForDayRental(ctx context.Context, productID string, deliveryDate, pickupDate time.Time) (*Selection, error)

	// EarliestBookableDate exposes the cutoff rule's earliest pick.
	EarliestBookableDate() time.Time
}

type service struct {
	products  product.Service
	resources resource.Service
	blocks    ledger.Repository
	policy    Policy

	now func() time.Time
}

// NewService creates the availability checker.
func NewService(products product.Service, resources resource.Service, blocks ledger.Repository, policy Policy) Service {
	return &service{
		products:  products,
		resources: resources,
		blocks:    blocks,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *service) EarliestBookableDate() time.Time {
	return s.policy.EarliestBookableDate(s.now())
}

func (s *service) CheckSlots(ctx context.Context, productID string, date time.Time) ([]SlotAvailability, error) {
	p, err := s.slotProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckCutoff(s.now(), date); err != nil {
		return nil, err
	}

	slots := p.ActiveSlots()
	if len(slots) == 0 {
		return nil, ErrNoActiveSlots
	}

	assets, crews, err := s.fleet(ctx, productID)
	if err != nil {
		return nil, err
	}

	results := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		event, svc, err := s.slotWindows(p, slot, date)
		if err != nil {
			return nil, err
		}

		sa := SlotAvailability{
			SlotID:       slot.ID,
			Label:        slot.Label,
			EventStart:   event.Start,
			EventEnd:     event.End,
			ServiceStart: svc.Start,
			ServiceEnd:   svc.End,
		}

		deliveryLeg := Window{Start: svc.Start, End: event.Start}
		pickupLeg := Window{Start: event.End, End: svc.End}

		sa.Available, sa.Reason, err = s.checkWindow(ctx, assets, crews, svc, deliveryLeg, pickupLeg, event.Start)
		if err != nil {
			return nil, err
		}

		results = append(results, sa)
	}
	return results, nil
}

func (s *service) CheckDayRental(ctx context.Context, productID string, deliveryDate, pickupDate time.Time) (*DayRentalAvailability, error) {
	p, err := s.dayRentalProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckCutoff(s.now(), deliveryDate); err != nil {
		return nil, err
	}

	win, err := s.dayRentalWindows(p, deliveryDate, pickupDate)
	if err != nil {
		return nil, err
	}

	assets, crews, err := s.fleet(ctx, productID)
	if err != nil {
		return nil, err
	}

	result := &DayRentalAvailability{
		EventStart:   win.event.Start,
		EventEnd:     win.event.End,
		ServiceStart: win.service.Start,
		ServiceEnd:   win.service.End,
	}

	// Same-day pickup capacity is checked against the evening leg with any
	// crew, independent of whoever takes the delivery leg.
	eveningCrew, err := s.findFreeCrew(ctx, crews, win.eveningLeg)
	if err != nil {
		return nil, err
	}
	result.SameDayPickupPossible = eveningCrew != ""

	if win.sameDay && !result.SameDayPickupPossible {
		result.Reason = ReasonCrewCapacity
		return result, nil
	}

	result.Available, result.Reason, err = s.checkWindow(
		ctx, assets, crews, win.service, win.deliveryLeg, win.pickupLeg, win.event.Start,
	)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) SelectForSlot(ctx context.Context, productID, slotID string, date time.Time) (*Selection, error) {
	p, err := s.slotProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckCutoff(s.now(), date); err != nil {
		return nil, err
	}

	var slot *product.Slot
	for i := range p.Slots {
		if p.Slots[i].ID == slotID && p.Slots[i].IsActive {
			slot = &p.Slots[i]
			break
		}
	}
	if slot == nil {
		return nil, product.ErrSlotNotFound
	}

	event, svc, err := s.slotWindows(p, *slot, date)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckLeadTime(s.now(), event.Start); err != nil {
		return nil, err
	}

	deliveryLeg := Window{Start: svc.Start, End: event.Start}
	pickupLeg := Window{Start: event.End, End: svc.End}

	return s.selectResources(ctx, productID, event, svc, deliveryLeg, pickupLeg)
}

func (s *service) SelectForDayRental(ctx context.Context, productID string, deliveryDate, pickupDate time.Time) (*Selection, error) {
	p, err := s.dayRentalProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckCutoff(s.now(), deliveryDate); err != nil {
		return nil, err
	}

	win, err := s.dayRentalWindows(p, deliveryDate, pickupDate)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CheckLeadTime(s.now(), win.event.Start); err != nil {
		return nil, err
	}

	return s.selectResources(ctx, productID, win.event, win.service, win.deliveryLeg, win.pickupLeg)
}

// --- internals ---

func (s *service) slotProduct(ctx context.Context, productID string) (*product.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}
	if p.SchedulingMode != product.ModeSlotBased {
		return nil, ErrWrongMode
	}
	return p, nil
}

func (s *service) dayRentalProduct(ctx context.Context, productID string) (*product.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrProductInactive
	}
	if p.SchedulingMode != product.ModeDayRental {
		return nil, ErrWrongMode
	}
	return p, nil
}

func (s *service) fleet(ctx context.Context, productID string) ([]*resource.Resource, []*resource.Resource, error) {
	assets, err := s.resources.ActiveAssets(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	crews, err := s.resources.ActiveCrews(ctx)
	if err != nil {
		return nil, nil, err
	}
	return assets, crews, nil
}

// slotWindows projects a slot's local wall-clock times onto a calendar date
// in the business timezone and expands the event window by the product's
// buffers to get the full service window.
func (s *service) slotWindows(p *product.Product, slot product.Slot, date time.Time) (event, svc Window, err error) {
	start, err := time.Parse("15:04", slot.StartLocal)
	if err != nil {
		return Window{}, Window{}, fmt.Errorf("slot %s has invalid start time %q: %w", slot.ID, slot.StartLocal, err)
	}
	end, err := time.Parse("15:04", slot.EndLocal)
	if err != nil {
		return Window{}, Window{}, fmt.Errorf("slot %s has invalid end time %q: %w", slot.ID, slot.EndLocal, err)
	}

	// The date is a calendar day; its own zone is irrelevant.
	y, m, d := date.Date()

	event.Start = time.Date(y, m, d, start.Hour(), start.Minute(), 0, 0, s.policy.Location)
	event.End = time.Date(y, m, d, end.Hour(), end.Minute(), 0, 0, s.policy.Location)

	svc.Start = event.Start.Add(-p.SetupLead())
	svc.End = event.End.Add(p.TeardownTail())
	return event, svc, nil
}

type dayRentalWindowSet struct {
	sameDay     bool
	event       Window
	service     Window
	deliveryLeg Window
	pickupLeg   Window
	eveningLeg  Window
}

func (s *service) dayRentalWindows(p *product.Product, deliveryDate, pickupDate time.Time) (dayRentalWindowSet, error) {
	dy, dm, dd := deliveryDate.Date()
	py, pm, pd := pickupDate.Date()

	deliveryMidnight := time.Date(dy, dm, dd, 0, 0, 0, 0, s.policy.Location)
	pickupMidnight := time.Date(py, pm, pd, 0, 0, 0, 0, s.policy.Location)
	if pickupMidnight.Before(deliveryMidnight) {
		return dayRentalWindowSet{}, ErrInvalidDates
	}

	win := dayRentalWindowSet{
		sameDay: pickupMidnight.Equal(deliveryMidnight),
	}

	win.event.Start = time.Date(dy, dm, dd, dayRentalDeliveryHour, 0, 0, 0, s.policy.Location)
	if win.sameDay {
		win.event.End = time.Date(dy, dm, dd, dayRentalSameDayEnd, 0, 0, 0, s.policy.Location)
	} else {
		win.event.End = time.Date(py, pm, pd, dayRentalPickupHour, 0, 0, 0, s.policy.Location)
	}

	win.service.Start = win.event.Start.Add(-p.SetupLead())
	win.service.End = win.event.End.Add(p.TeardownTail())

	win.deliveryLeg = Window{Start: win.service.Start, End: win.event.Start}

	// Evening leg covers loading through return travel; its span already
	// includes the travel buffer.
	win.eveningLeg = Window{
		Start: time.Date(dy, dm, dd, eveningLegStartHour, 0, 0, 0, s.policy.Location),
		End:   time.Date(dy, dm, dd, eveningLegEndHour, eveningLegEndMinute, 0, 0, s.policy.Location),
	}

	if win.sameDay {
		win.pickupLeg = win.eveningLeg
	} else {
		win.pickupLeg = Window{Start: win.event.End, End: win.service.End}
	}

	return win, nil
}

// checkWindow runs the three-part check: lead time, asset capacity, crew
// capacity per leg. The two legs may be satisfied by different crews.
func (s *service) checkWindow(ctx context.Context, assets, crews []*resource.Resource, svc, deliveryLeg, pickupLeg Window, eventStart time.Time) (bool, Reason, error) {
	if !s.policy.meetsLeadTime(s.now(), eventStart) {
		return false, ReasonLeadTime, nil
	}

	assetID, err := s.findFreeAsset(ctx, assets, svc)
	if err != nil {
		return false, ReasonNone, err
	}
	if assetID == "" {
		return false, ReasonAssetCapacity, nil
	}

	deliveryCrew, err := s.findFreeCrew(ctx, crews, deliveryLeg)
	if err != nil {
		return false, ReasonNone, err
	}
	if deliveryCrew == "" {
		return false, ReasonCrewCapacity, nil
	}

	pickupCrew, err := s.findFreeCrew(ctx, crews, pickupLeg)
	if err != nil {
		return false, ReasonNone, err
	}
	if pickupCrew == "" {
		return false, ReasonCrewCapacity, nil
	}

	return true, ReasonNone, nil
}

func (s *service) selectResources(ctx context.Context, productID string, event, svc, deliveryLeg, pickupLeg Window) (*Selection, error) {
	assets, crews, err := s.fleet(ctx, productID)
	if err != nil {
		return nil, err
	}

	assetID, err := s.findFreeAsset(ctx, assets, svc)
	if err != nil {
		return nil, err
	}
	if assetID == "" {
		return nil, ErrNoSelection
	}

	deliveryCrew, err := s.findFreeCrew(ctx, crews, deliveryLeg)
	if err != nil {
		return nil, err
	}
	pickupCrew, err := s.findFreeCrew(ctx, crews, pickupLeg)
	if err != nil {
		return nil, err
	}
	if deliveryCrew == "" || pickupCrew == "" {
		return nil, ErrNoSelection
	}

	return &Selection{
		AssetID:        assetID,
		DeliveryCrewID: deliveryCrew,
		PickupCrewID:   pickupCrew,
		EventStart:     event.Start,
		EventEnd:       event.End,
		ServiceStart:   svc.Start,
		ServiceEnd:     svc.End,
		DeliveryLeg:    deliveryLeg,
		PickupLeg:      pickupLeg,
	}, nil
}

// findFreeAsset returns the first asset with no block overlapping the window.
func (s *service) findFreeAsset(ctx context.Context, assets []*resource.Resource, w Window) (string, error) {
	for _, a := range assets {
		n, err := s.blocks.CountOverlapping(ctx, a.ID, w.Start, w.End)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return a.ID, nil
		}
	}
	return "", nil
}

// findFreeCrew returns the first crew with spare capacity over the window.
func (s *service) findFreeCrew(ctx context.Context, crews []*resource.Resource, w Window) (string, error) {
	for _, c := range crews {
		n, err := s.blocks.CountOverlapping(ctx, c.ID, w.Start, w.End)
		if err != nil {
			return "", err
		}
		if n < c.Capacity {
			return c.ID, nil
		}
	}
	return "", nil
}
