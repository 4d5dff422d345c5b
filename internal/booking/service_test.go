package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpeak-rentals/scheduling-backend/internal/allocation"
	"github.com/sunpeak-rentals/scheduling-backend/internal/availability"
	"github.com/sunpeak-rentals/scheduling-backend/internal/ledger"
	"github.com/sunpeak-rentals/scheduling-backend/internal/payment"
	"github.com/sunpeak-rentals/scheduling-backend/internal/product"
)

type memoryRepo struct {
	seq       int
	bookings  map[string]*Booking
	updateErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: map[string]*Booking{}}
}

func (r *memoryRepo) Create(_ context.Context, b *Booking) error {
	r.seq++
	b.ID = fmt.Sprintf("bk-%d", r.seq)
	b.CreatedAt = time.Now()
	copy := *b
	r.bookings[b.ID] = &copy
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copy := *b
	return &copy, nil
}

func (r *memoryRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, b := range r.bookings {
		copy := *b
		out = append(out, &copy)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Update(_ context.Context, b *Booking) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	copy := *b
	r.bookings[b.ID] = &copy
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	delete(r.bookings, id)
	return nil
}

func (r *memoryRepo) DueForAutomation(_ context.Context, _ time.Time) ([]*Booking, error) {
	return nil, nil
}

type stubProducts struct {
	product.Service
	p *product.Product
}

func (s stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	if s.p == nil || s.p.ID != id {
		return nil, product.ErrNotFound
	}
	return s.p, nil
}

type stubAvailability struct {
	sel *availability.Selection
	err error
}

func (s stubAvailability) CheckSlots(context.Context, string, time.Time) ([]availability.SlotAvailability, error) {
	return nil, nil
}

func (s stubAvailability) CheckDayRental(context.Context, string, time.Time, time.Time) (*availability.DayRentalAvailability, error) {
	return nil, nil
}

func (s stubAvailability) SelectForSlot(context.Context, string, string, time.Time) (*availability.Selection, error) {
	return s.sel, s.err
}

func (s stubAvailability) SelectForDayRental(context.Context, string, time.Time, time.Time) (*availability.Selection, error) {
	return s.sel, s.err
}

func (s stubAvailability) EarliestBookableDate() time.Time {
	return time.Time{}
}

type stubAllocator struct {
	reserveErr error
	reserved   []allocation.Request
	released   []string
}

func (s *stubAllocator) Reserve(_ context.Context, req allocation.Request) ([]ledger.Block, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	s.reserved = append(s.reserved, req)
	return nil, nil
}

func (s *stubAllocator) Release(_ context.Context, bookingID string) error {
	s.released = append(s.released, bookingID)
	return nil
}

type stubPayments struct {
	refundResult payment.RefundResult
	refundErr    error
	refunds      []payment.RefundRequest
}

func (s *stubPayments) PaidStatus(context.Context, string) (payment.PaidStatus, error) {
	return payment.PaidStatus{}, nil
}

func (s *stubPayments) Refund(_ context.Context, req payment.RefundRequest) (payment.RefundResult, error) {
	s.refunds = append(s.refunds, req)
	return s.refundResult, s.refundErr
}

func testSelection(loc *time.Location) *availability.Selection {
	eventStart := time.Date(2026, 6, 10, 10, 0, 0, 0, loc)
	eventEnd := time.Date(2026, 6, 10, 14, 0, 0, 0, loc)
	svcStart := eventStart.Add(-45 * time.Minute)
	svcEnd := eventEnd.Add(time.Hour)

	return &availability.Selection{
		AssetID:        "a1",
		DeliveryCrewID: "c1",
		PickupCrewID:   "c2",
		EventStart:     eventStart,
		EventEnd:       eventEnd,
		ServiceStart:   svcStart,
		ServiceEnd:     svcEnd,
		DeliveryLeg:    availability.Window{Start: svcStart, End: eventStart},
		PickupLeg:      availability.Window{Start: eventEnd, End: svcEnd},
	}
}

type fixture struct {
	repo      *memoryRepo
	allocator *stubAllocator
	payments  *stubPayments
	svc       Service
}

func newFixture(t *testing.T, avail stubAvailability) *fixture {
	t.Helper()
	f := &fixture{
		repo:      newMemoryRepo(),
		allocator: &stubAllocator{},
		payments:  &stubPayments{},
	}
	p := &product.Product{
		ID:             "prod-1",
		SchedulingMode: product.ModeSlotBased,
		IsActive:       true,
	}
	f.svc = NewService(f.repo, stubProducts{p: p}, avail, f.allocator, f.payments)
	return f
}

func TestCreateConfirmsBooking(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	sel := testSelection(loc)

	f := newFixture(t, stubAvailability{sel: sel})

	b, err := f.svc.Create(context.Background(), CreateRequest{
		ProductID:     "prod-1",
		SlotID:        "slot-1",
		EventDate:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		SubtotalCents: 20000,
		DepositCents:  5000,
		DepositPaid:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, b.Status)
	require.NotNil(t, b.ConfirmedAt)
	require.NotNil(t, b.AssetID)
	assert.Equal(t, "a1", *b.AssetID)
	assert.Equal(t, int64(15000), b.BalanceDueCents)
	assert.True(t, b.EventStart.Equal(sel.EventStart))
	assert.True(t, b.PickupWindowEnd.Equal(sel.PickupLeg.End))

	require.Len(t, f.allocator.reserved, 1)
	assert.Equal(t, b.ID, f.allocator.reserved[0].BookingID)

	stored, err := f.svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)
}

func TestCreateConflictRemovesBooking(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	f := newFixture(t, stubAvailability{sel: testSelection(loc)})
	f.allocator.reserveErr = ledger.ErrConflict

	_, err = f.svc.Create(context.Background(), CreateRequest{
		ProductID:     "prod-1",
		SlotID:        "slot-1",
		EventDate:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		SubtotalCents: 20000,
	})
	require.ErrorIs(t, err, ledger.ErrConflict)

	// No partial state: the pending row must be gone.
	assert.Empty(t, f.repo.bookings)
}

func TestCreateConfirmFailureReleasesBlocks(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	f := newFixture(t, stubAvailability{sel: testSelection(loc)})
	f.repo.updateErr = errors.New("connection reset")

	_, err = f.svc.Create(context.Background(), CreateRequest{
		ProductID:     "prod-1",
		SlotID:        "slot-1",
		EventDate:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		SubtotalCents: 20000,
	})
	require.Error(t, err)

	// The reservation succeeded but the confirm write did not: the
	// blocks must be released and the pending row removed.
	require.Len(t, f.allocator.reserved, 1)
	assert.Equal(t, []string{f.allocator.reserved[0].BookingID}, f.allocator.released)
	assert.Empty(t, f.repo.bookings)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t, stubAvailability{})

	_, err := f.svc.Create(context.Background(), CreateRequest{
		ProductID:     "prod-1",
		SlotID:        "slot-1",
		SubtotalCents: 1000,
		DepositCents:  2000,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Create(context.Background(), CreateRequest{
		ProductID:     "prod-1",
		SubtotalCents: 1000,
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "slot-based product requires a slot id")
}

func seedBooking(t *testing.T, f *fixture, status Status) *Booking {
	t.Helper()
	b := &Booking{
		ProductID:     "prod-1",
		Status:        status,
		SubtotalCents: 20000,
		DepositCents:  5000,
		DepositPaid:   true,
		RefundStatus:  RefundNone,
	}
	require.NoError(t, f.repo.Create(context.Background(), b))
	return b
}

func TestLifecycleTransitions(t *testing.T) {
	f := newFixture(t, stubAvailability{})
	b := seedBooking(t, f, StatusConfirmed)

	got, err := f.svc.MarkDelivered(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)
	assert.NotNil(t, got.DeliveredAt)

	got, err = f.svc.MarkPickedUp(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPickedUp, got.Status)

	got, err = f.svc.Complete(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)

	// Completed is terminal.
	_, err = f.svc.MarkDelivered(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestLifecycleOutOfOrder(t *testing.T) {
	f := newFixture(t, stubAvailability{})
	b := seedBooking(t, f, StatusConfirmed)

	_, err := f.svc.MarkPickedUp(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Complete(context.Background(), b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		b := seedBooking(t, f, StatusConfirmed)

		_, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{})
		assert.ErrorIs(t, err, ErrCancelNeedsReason)
	})

	t.Run("refund cannot exceed amount paid", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		b := seedBooking(t, f, StatusConfirmed) // deposit 5000 paid

		_, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{
			Reason:            "customer request",
			RefundAmountCents: 6000,
		})
		assert.ErrorIs(t, err, ErrInvalidRefund)
	})

	t.Run("releases blocks and records the refund", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		f.payments.refundResult = payment.RefundResult{Processed: true}
		b := seedBooking(t, f, StatusConfirmed)

		got, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{
			Reason:            "weather",
			RefundAmountCents: 5000,
			RefundMethod:      "card",
		})
		require.NoError(t, err)

		assert.Equal(t, StatusCancelled, got.Status)
		require.NotNil(t, got.CancelReason)
		assert.Equal(t, "weather", *got.CancelReason)
		assert.Equal(t, RefundProcessed, got.RefundStatus)
		assert.Equal(t, int64(5000), got.RefundAmountCents)
		assert.Equal(t, []string{b.ID}, f.allocator.released)
		require.Len(t, f.payments.refunds, 1)
	})

	t.Run("unprocessed refund stays pending", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		f.payments.refundResult = payment.RefundResult{Processed: false}
		b := seedBooking(t, f, StatusConfirmed)

		got, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{
			Reason:            "weather",
			RefundAmountCents: 5000,
		})
		require.NoError(t, err)
		assert.Equal(t, RefundPending, got.RefundStatus)
	})

	t.Run("retry on a cancelled booking re-releases only", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		b := seedBooking(t, f, StatusConfirmed)

		_, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{Reason: "weather"})
		require.NoError(t, err)

		got, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{Reason: "weather"})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Equal(t, []string{b.ID, b.ID}, f.allocator.released)
	})

	t.Run("terminal completed booking cannot cancel", func(t *testing.T) {
		f := newFixture(t, stubAvailability{})
		b := seedBooking(t, f, StatusCompleted)

		_, err := f.svc.Cancel(context.Background(), b.ID, CancelRequest{Reason: "late"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestRecordPayment(t *testing.T) {
	f := newFixture(t, stubAvailability{})
	b := seedBooking(t, f, StatusConfirmed)
	b.DepositPaid = false
	b.BalanceDueCents = 15000
	require.NoError(t, f.repo.Update(context.Background(), b))

	got, err := f.svc.RecordPayment(context.Background(), b.ID, "deposit")
	require.NoError(t, err)
	assert.True(t, got.DepositPaid)
	assert.False(t, got.PaidInFull())

	got, err = f.svc.RecordPayment(context.Background(), b.ID, "balance")
	require.NoError(t, err)
	assert.True(t, got.BalancePaid)
	assert.Equal(t, int64(0), got.BalanceDueCents)
	assert.True(t, got.PaidInFull())

	_, err = f.svc.RecordPayment(context.Background(), b.ID, "tip")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
