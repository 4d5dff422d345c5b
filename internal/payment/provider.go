package payment

import "context"

// PaidStatus is the provider's view of a booking's payment state.
type PaidStatus struct {
	PaidInFull      bool
	BalanceDueCents int64
}

// RefundRequest asks the provider to return money for a cancelled booking.
type RefundRequest struct {
	BookingID   string
	AmountCents int64
	Method      string
}

// RefundResult reports whether the refund was processed automatically.
// When Processed is false the refund stays queued for manual settlement.
type RefundResult struct {
	Processed bool
	Reference string
}

// Provider is the boundary to the payment system. The core never computes
// card fees or payment-method specifics; it only asks for paid state and
// optionally triggers refunds.
type Provider interface {
	PaidStatus(ctx context.Context, bookingID string) (PaidStatus, error)
	Refund(ctx context.Context, req RefundRequest) (RefundResult, error)
}

// ManualProvider is the default Provider: it reports nothing as paid and
// leaves every refund for manual settlement. Deployments wire a real
// gateway adapter in its place.
type ManualProvider struct{}

func NewManualProvider() *ManualProvider {
	return &ManualProvider{}
}

func (p *ManualProvider) PaidStatus(ctx context.Context, bookingID string) (PaidStatus, error) {
	return PaidStatus{}, nil
}

func (p *ManualProvider) Refund(ctx context.Context, req RefundRequest) (RefundResult, error) {
	return RefundResult{Processed: false}, nil
}
