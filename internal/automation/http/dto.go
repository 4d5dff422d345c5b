package http

import (
	"time"

	"github.com/sunpeak-rentals/scheduling-backend/internal/automation"
)

type LogEntryResponse struct {
	ID        string         `json:"id"`
	BookingID *string        `json:"booking_id,omitempty"`
	Action    string         `json:"action"`
	Detail    map[string]any `json:"detail"`
	Success   bool           `json:"success"`
	Error     *string        `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func NewLogEntryResponse(e *automation.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:        e.ID,
		BookingID: e.BookingID,
		Action:    string(e.Action),
		Detail:    e.Detail,
		Success:   e.Success,
		Error:     e.Error,
		CreatedAt: e.CreatedAt,
	}
}
