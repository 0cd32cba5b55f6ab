package websocket

import "github.com/santhosh0728/edutask-exam-gateway/internal/session"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSnapshot Event = "snapshot"
	EventOutcome  Event = "outcome"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// SnapshotEvent carries the per-second session snapshot (timer display,
// answered counts, current question).
type SnapshotEvent struct {
	Event    Event            `json:"event"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// OutcomeEvent is sent once when the session reaches a terminal outcome,
// after which the stream closes.
type OutcomeEvent struct {
	Event    Event           `json:"event"`
	Outcome  session.Outcome `json:"outcome"`
	Message  string          `json:"message,omitempty"`
	ResultID string          `json:"result_id,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
