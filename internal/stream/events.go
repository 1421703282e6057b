package stream

import (
	"encoding/json"

	"capitolview/internal/model"
)

type EventType int

const (
	EventChunk EventType = iota
	EventToolCall
	EventToolResult
	EventSources
	EventError
	EventDone
)

// Event is one decoded stream payload: a tagged union discriminated by which
// key is present in the JSON object.
type Event struct {
	Type       EventType
	Chunk      string
	ToolCall   *ToolCallPayload
	ToolResult *ToolResultPayload
	Sources    []model.Source
	Err        string
}

type ToolCallPayload struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

type ToolResultPayload struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Result json.RawMessage `json:"result"`
}

// DecodeEvent parses one "data:" payload. Keys are tested in a fixed
// priority order: chunk, tool_call, tool_result, sources, error, done.
// Malformed or unrecognized payloads return ok=false and are skipped by the
// caller rather than aborting the stream.
func DecodeEvent(data []byte) (Event, bool) {
	var raw struct {
		Chunk      *string            `json:"chunk"`
		ToolCall   *ToolCallPayload   `json:"tool_call"`
		ToolResult *ToolResultPayload `json:"tool_result"`
		Sources    []model.Source     `json:"sources"`
		Error      *string            `json:"error"`
		Done       bool               `json:"done"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Event{}, false
	}

	switch {
	case raw.Chunk != nil:
		return Event{Type: EventChunk, Chunk: *raw.Chunk}, true
	case raw.ToolCall != nil:
		return Event{Type: EventToolCall, ToolCall: raw.ToolCall}, true
	case raw.ToolResult != nil:
		return Event{Type: EventToolResult, ToolResult: raw.ToolResult}, true
	case raw.Sources != nil:
		return Event{Type: EventSources, Sources: raw.Sources}, true
	case raw.Error != nil:
		return Event{Type: EventError, Err: *raw.Error}, true
	case raw.Done:
		return Event{Type: EventDone}, true
	}
	return Event{}, false
}
