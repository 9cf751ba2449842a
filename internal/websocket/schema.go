package websocket

import "github.com/stemsi/portfolio-backend/internal/calculator"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAddRow    Action = "add_row"
	ActionUpdateRow Action = "update_row"
	ActionRemoveRow Action = "remove_row"
	ActionSubmit    Action = "submit"
	ActionReset     Action = "reset"
	ActionPing      Action = "ping"
)

// RequestPayload is every client message. Row fields are only read by the
// row actions.
type RequestPayload struct {
	Action Action `json:"action"`
	RowID  string `json:"row_id,omitempty"`
	Name   string `json:"name,omitempty"`
	Marks  string `json:"marks,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventState  Event = "state"
	EventResult Event = "result"
	EventError  Event = "error"
	EventPong   Event = "pong"
)

// StateResponse carries the full calculator state after a row change or reset.
type StateResponse struct {
	Event Event            `json:"event"`
	State calculator.State `json:"state"`
}

// ResultResponse is sent after a successful submit.
type ResultResponse struct {
	Event          Event            `json:"event"`
	GPA            float64          `json:"gpa"`
	GPADisplay     string           `json:"gpa_display"`
	Classification string           `json:"classification"`
	State          calculator.State `json:"state"`
}

// ErrorResponse reports a rejected action. Field is set for validation
// failures, e.g. "rows[0].marks".
type ErrorResponse struct {
	Event Event  `json:"event"`
	Code  string `json:"code"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
