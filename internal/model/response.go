package model

import "time"

// ChatSnapshot is one SSE frame relayed to the browser: the full
// reconstructed assistant message state after applying one stream event.
// Consumers replace their view of the message rather than patching it.
type ChatSnapshot struct {
	SessionID string        `json:"session_id"`
	MessageID string        `json:"message_id"`
	Parts     []ContentPart `json:"parts"`
	Done      bool          `json:"done"`
	Timestamp int64         `json:"timestamp"`
}

type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}
