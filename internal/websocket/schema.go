package websocket

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
	EventError      Event = "error"
	EventPong       Event = "pong"
	EventGenerated  Event = "schedule.generated"
	EventAssigned   Event = "assignment.changed"
	EventSwitched   Event = "switch.confirmed"
	EventUndone     Event = "undo.applied"
	EventPropagated Event = "schedule.propagated"
)

// StreamEvent is one schedule change pushed to every watcher of that
// schedule. The same JSON travels the Redis channel and the WebSocket, so
// the handler can forward Redis payloads verbatim.
type StreamEvent struct {
	Event      Event  `json:"event"`
	ScheduleID string `json:"schedule_id"`
	// LabIDs lists the labs whose assignment changed, when the event is
	// narrower than a full regeneration.
	LabIDs []int `json:"lab_ids,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
