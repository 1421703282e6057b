package model

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type PartType string

const (
	PartText     PartType = "text"
	PartToolCall PartType = "tool_call"
)

// ContentPart is one element of an assistant message: either accumulated
// text or a tool invocation (carrying its result once one has arrived).
type ContentPart struct {
	Type     PartType       `json:"type"`
	Text     string         `json:"text,omitempty"`
	ToolCall *ToolCallState `json:"tool_call,omitempty"`
}

// ToolCallState tracks one tool invocation announced by the stream. Result
// stays nil until a matching tool_result event arrives.
type ToolCallState struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Args   json.RawMessage `json:"args,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}

func (t *ToolCallState) Completed() bool {
	return t != nil && t.Result != nil
}

// Source is one citation collected from the stream, de-duplicated by URL.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// ChatMessage is one transcript turn. Assistant messages are built
// incrementally while streaming and frozen once the stream completes.
type ChatMessage struct {
	ID        string        `json:"id"`
	Role      Role          `json:"role"`
	Content   string        `json:"content"`
	Parts     []ContentPart `json:"parts,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type Session struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PageContext tells the assistant what the user is currently looking at.
type PageContext struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}
