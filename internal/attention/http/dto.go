package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/attention"
)

type FlagRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Type      string `json:"type" binding:"required"`
	Priority  string `json:"priority" binding:"required,oneof=low medium high urgent"`
	Note      string `json:"note"`
}

type ResolveRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}

type DismissRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type SuggestedActionResponse struct {
	Label   string            `json:"label"`
	Kind    string            `json:"kind"`
	Variant string            `json:"variant"`
	Payload map[string]string `json:"payload,omitempty"`
}

type ItemResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Type      string  `json:"type"`
	Priority  string  `json:"priority"`
	Status    string  `json:"status"`
	Note      *string `json:"note,omitempty"`

	SuggestedActions []SuggestedActionResponse `json:"suggested_actions"`

	StartedBy       *string    `json:"started_by,omitempty"`
	ResolvedBy      *string    `json:"resolved_by,omitempty"`
	ResolvedAction  *string    `json:"resolved_action,omitempty"`
	ResolutionNotes *string    `json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Suppressed is set on flag responses when the insert was a
	// duplicate of an already-pending item.
	Suppressed bool `json:"suppressed,omitempty"`
}

func NewItemResponse(item *attention.Item) ItemResponse {
	actions := make([]SuggestedActionResponse, len(item.SuggestedActions))
	for i, a := range item.SuggestedActions {
		actions[i] = SuggestedActionResponse{
			Label:   a.Label,
			Kind:    a.Kind,
			Variant: a.Variant,
			Payload: a.Payload,
		}
	}

	return ItemResponse{
		ID:               item.ID,
		BookingID:        item.BookingID,
		Type:             string(item.Type),
		Priority:         string(item.Priority),
		Status:           string(item.Status),
		Note:             item.Note,
		SuggestedActions: actions,
		StartedBy:        item.StartedBy,
		ResolvedBy:       item.ResolvedBy,
		ResolvedAction:   item.ResolvedAction,
		ResolutionNotes:  item.ResolutionNotes,
		ResolvedAt:       item.ResolvedAt,
		CreatedAt:        item.CreatedAt,
	}
}
