package attention

import (
	"net/http"
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("attention item not found")
	ErrNotPending   = apperror.New(http.StatusUnprocessableEntity, "attention item is not open")
	ErrInvalidInput = apperror.BadRequest("invalid input parameters")
	ErrUnknownType  = apperror.BadRequest("unknown attention item type")
	ErrNeedsReason  = apperror.BadRequest("dismissal requires a reason")
)

// Type names what kind of human follow-up an item asks for.
type Type string

const (
	TypeDeliveryConfirmation Type = "delivery_confirmation"
	TypePickupConfirmation   Type = "pickup_confirmation"
	TypePaymentCollection    Type = "payment_collection"
	TypeBookingClosure       Type = "booking_closure"
	TypeIssueReported        Type = "issue_reported"
	TypeManualReview         Type = "manual_review"
	TypeCancellationRequest  Type = "cancellation_request"
)

var validTypes = map[Type]bool{
	TypeDeliveryConfirmation: true,
	TypePickupConfirmation:   true,
	TypePaymentCollection:    true,
	TypeBookingClosure:       true,
	TypeIssueReported:        true,
	TypeManualReview:         true,
	TypeCancellationRequest:  true,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDismissed  Status = "dismissed"
)

// SuggestedAction is advisory metadata for the consuming UI. It never
// drives any state change on its own.
type SuggestedAction struct {
	Label   string            `json:"label"`
	Kind    string            `json:"kind"`
	Variant string            `json:"variant"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Item is one unit of required human review tied to a booking. At most
// one pending item per (booking, type) exists at a time.
type Item struct {
	ID        string
	BookingID string
	Type      Type
	Priority  Priority
	Status    Status
	Note      *string

	SuggestedActions []SuggestedAction

	// StartedBy is the operator who claimed the item; set when the item
	// moves to in-progress and kept after it closes.
	StartedBy *string

	ResolvedBy      *string
	ResolvedAction  *string
	ResolutionNotes *string
	ResolvedAt      *time.Time

	CreatedAt time.Time
}

// IsOpen reports whether the item still awaits an operator.
func (i *Item) IsOpen() bool {
	return i.Status == StatusPending || i.Status == StatusInProgress
}
