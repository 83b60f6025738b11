package gateway

import "github.com/chrono-app/chrono/internal/model"

// The gateway exposes whole-collection replace semantics: every mutating
// endpoint accepts and echoes the full collection for its key. These
// envelopes are the explicit wire schemas; a payload that fails to decode
// into them is surfaced as a gateway error rather than propagated as
// missing fields.

// tasksEnvelope wraps the tasks collection on both requests and responses.
type tasksEnvelope struct {
	Success bool         `json:"success,omitempty"`
	Tasks   []model.Task `json:"tasks"`
}

// sessionsEnvelope wraps the focus-session collection.
type sessionsEnvelope struct {
	Success  bool                 `json:"success,omitempty"`
	Sessions []model.FocusSession `json:"sessions"`
}

// userDataEnvelope wraps the aggregate-stats record.
type userDataEnvelope struct {
	Success  bool             `json:"success,omitempty"`
	UserData *model.UserStats `json:"userData"`
}

// healthEnvelope is the health-check response.
type healthEnvelope struct {
	Status string `json:"status"`
}

// ErrorResponse is the gateway's non-2xx body shape. The Error message is
// surfaced as the thrown failure reason.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
