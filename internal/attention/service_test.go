package attention

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunpeak-rentals/scheduling-backend/internal/booking"
)

type memoryRepo struct {
	seq   int
	items map[string]*Item
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]*Item{}}
}

func (r *memoryRepo) Create(_ context.Context, item *Item) (bool, error) {
	for _, existing := range r.items {
		if existing.BookingID == item.BookingID && existing.Type == item.Type &&
			existing.Status == StatusPending {
			*item = *existing
			return true, nil
		}
	}
	r.seq++
	item.ID = fmt.Sprintf("item-%d", r.seq)
	item.CreatedAt = time.Now()
	cp := *item
	r.items[item.ID] = &cp
	return false, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *memoryRepo) ListPending(_ context.Context) ([]*Item, error) {
	var out []*Item
	for _, item := range r.items {
		if item.IsOpen() {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListForBooking(_ context.Context, bookingID string) ([]*Item, error) {
	var out []*Item
	for _, item := range r.items {
		if item.BookingID == bookingID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(_ context.Context, item *Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memoryRepo) ResolvePendingForBooking(_ context.Context, bookingID, action string) (int, error) {
	n := 0
	for _, item := range r.items {
		if item.BookingID == bookingID && item.IsOpen() {
			item.Status = StatusResolved
			a := action
			item.ResolvedAction = &a
			n++
		}
	}
	return n, nil
}

func (r *memoryRepo) CountsByPriority(_ context.Context) (map[Priority]int, error) {
	counts := map[Priority]int{}
	for _, item := range r.items {
		if item.IsOpen() {
			counts[item.Priority]++
		}
	}
	return counts, nil
}

type stubBookings struct {
	b *booking.Booking
}

func (s stubBookings) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	if s.b == nil || s.b.ID != id {
		return nil, booking.ErrNotFound
	}
	return s.b, nil
}

func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	b := &booking.Booking{
		ID:              "bk-1",
		SubtotalCents:   20000,
		DepositCents:    5000,
		DepositPaid:     true,
		BalanceDueCents: 15000,
	}
	return NewService(repo, stubBookings{b: b}), repo
}

func TestFlag(t *testing.T) {
	t.Run("creates a pending item with suggested actions", func(t *testing.T) {
		svc, _ := newTestService()

		item, suppressed, err := svc.Flag(context.Background(), "bk-1",
			TypePaymentCollection, PriorityHigh, "balance outstanding")
		require.NoError(t, err)

		assert.False(t, suppressed)
		assert.Equal(t, StatusPending, item.Status)
		assert.NotEmpty(t, item.SuggestedActions)
		require.NotNil(t, item.Note)
		assert.Equal(t, "balance outstanding", *item.Note)
	})

	t.Run("duplicate pending item is suppressed", func(t *testing.T) {
		svc, _ := newTestService()

		first, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
		require.NoError(t, err)

		second, suppressed, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityUrgent, "")
		require.NoError(t, err)

		assert.True(t, suppressed)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("different types coexist", func(t *testing.T) {
		svc, _ := newTestService()

		_, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
		require.NoError(t, err)
		_, suppressed, err := svc.Flag(context.Background(), "bk-1", TypePaymentCollection, PriorityHigh, "")
		require.NoError(t, err)
		assert.False(t, suppressed)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.Flag(context.Background(), "bk-1", Type("escalate"), PriorityLow, "")
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("unknown booking rejected", func(t *testing.T) {
		svc, _ := newTestService()
		_, _, err := svc.Flag(context.Background(), "bk-404", TypeManualReview, PriorityLow, "")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestResolve(t *testing.T) {
	svc, _ := newTestService()
	item, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), item.ID, "op-1", "contacted_customer", "left voicemail")
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, "op-1", *resolved.ResolvedBy)
	require.NotNil(t, resolved.ResolvedAction)
	assert.Equal(t, "contacted_customer", *resolved.ResolvedAction)
	assert.NotNil(t, resolved.ResolvedAt)

	// A closed item cannot be resolved again.
	_, err = svc.Resolve(context.Background(), item.ID, "op-2", "again", "")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestDismiss(t *testing.T) {
	svc, _ := newTestService()
	item, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
	require.NoError(t, err)

	_, err = svc.Dismiss(context.Background(), item.ID, "op-1", "")
	assert.ErrorIs(t, err, ErrNeedsReason)

	dismissed, err := svc.Dismiss(context.Background(), item.ID, "op-1", "raised in error")
	require.NoError(t, err)
	assert.Equal(t, StatusDismissed, dismissed.Status)
	require.NotNil(t, dismissed.ResolutionNotes)
	assert.Equal(t, "raised in error", *dismissed.ResolutionNotes)
}

func TestStart(t *testing.T) {
	svc, _ := newTestService()
	item, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
	require.NoError(t, err)

	started, err := svc.Start(context.Background(), item.ID, "op-1")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, started.Status)
	require.NotNil(t, started.StartedBy)
	assert.Equal(t, "op-1", *started.StartedBy)
	assert.Nil(t, started.ResolvedBy, "claiming an item is not a resolution")

	// Starting twice is rejected, resolving still works.
	_, err = svc.Start(context.Background(), item.ID, "op-2")
	assert.ErrorIs(t, err, ErrNotPending)

	resolved, err := svc.Resolve(context.Background(), item.ID, "op-2", "done", "")
	require.NoError(t, err)
	require.NotNil(t, resolved.StartedBy)
	assert.Equal(t, "op-1", *resolved.StartedBy)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, "op-2", *resolved.ResolvedBy)
}

func TestResolveForBooking(t *testing.T) {
	svc, repo := newTestService()
	_, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
	require.NoError(t, err)
	_, _, err = svc.Flag(context.Background(), "bk-1", TypePaymentCollection, PriorityHigh, "")
	require.NoError(t, err)

	n, err := svc.ResolveForBooking(context.Background(), "bk-1", "auto_completed")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pending, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCountsByPriority(t *testing.T) {
	svc, _ := newTestService()
	low, _, err := svc.Flag(context.Background(), "bk-1", TypeManualReview, PriorityLow, "")
	require.NoError(t, err)
	high, _, err := svc.Flag(context.Background(), "bk-1", TypePaymentCollection, PriorityHigh, "")
	require.NoError(t, err)

	// An in-progress item is still open and must stay in the counts so
	// the summary matches the worklist.
	_, err = svc.Start(context.Background(), low.ID, "op-1")
	require.NoError(t, err)

	counts, err := svc.CountsByPriority(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[PriorityLow])
	assert.Equal(t, 1, counts[PriorityHigh])
	assert.Equal(t, 0, counts[PriorityUrgent])

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Len(t, pending, total)

	// A resolved item leaves both views.
	_, err = svc.Resolve(context.Background(), high.ID, "op-1", "collected", "")
	require.NoError(t, err)
	counts, err = svc.CountsByPriority(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, counts[PriorityHigh])
}
