package automation

import "time"

// Action names what the processor did for one booking in one run.
type Action string

const (
	ActionAutoCompleted       Action = "auto_completed"
	ActionAttentionCreated    Action = "attention_created"
	ActionAttentionSuppressed Action = "attention_suppressed"
	ActionSkipped             Action = "skipped"
	ActionFailed              Action = "failed"
)

// LogEntry is one durable record of an automated decision. Automation
// acts unattended on money-adjacent state, so every outcome is kept for
// after-the-fact audit.
type LogEntry struct {
	ID        string
	BookingID *string
	Action    Action
	Detail    map[string]any
	Success   bool
	Error     *string
	CreatedAt time.Time
}

// RunResult is the aggregate outcome of one processor invocation.
type RunResult struct {
	Processed        int `json:"processed"`
	AttentionCreated int `json:"attention_created"`
	AutoCompleted    int `json:"auto_completed"`
	Errors           int `json:"errors"`
}
