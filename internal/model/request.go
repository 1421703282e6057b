package model

type ChatRequest struct {
	Message   string       `json:"message" binding:"required"`
	SessionID string       `json:"session_id"`
	Provider  string       `json:"provider"`
	Context   *PageContext `json:"page_context,omitempty"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}
