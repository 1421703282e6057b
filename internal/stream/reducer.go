package stream

import (
	"fmt"
	"strings"

	"capitolview/internal/model"
)

// reducer folds decoded events into the running assistant message state.
// Chunks append to the text, tool calls register in arrival order, tool
// results attach by id (unmatched ids are dropped), and sources collect
// de-duplicated by URL until done appends them as a markdown section.
type reducer struct {
	text    strings.Builder
	calls   []*model.ToolCallState
	byID    map[string]*model.ToolCallState
	sources []model.Source
	seen    map[string]bool
}

func newReducer() *reducer {
	return &reducer{
		byID: make(map[string]*model.ToolCallState),
		seen: make(map[string]bool),
	}
}

// apply folds one event in. changed reports whether the visible message
// state moved (and a snapshot should be yielded).
func (r *reducer) apply(ev Event) (changed bool) {
	switch ev.Type {
	case EventChunk:
		r.text.WriteString(ev.Chunk)
		return true

	case EventToolCall:
		call := &model.ToolCallState{
			ID:   ev.ToolCall.ID,
			Name: ev.ToolCall.Name,
			Args: ev.ToolCall.Args,
		}
		r.calls = append(r.calls, call)
		r.byID[call.ID] = call
		return true

	case EventToolResult:
		call, ok := r.byID[ev.ToolResult.ID]
		if !ok {
			// No prior tool_call with this id; drop it.
			return false
		}
		call.Result = ev.ToolResult.Result
		return true

	case EventSources:
		for _, src := range ev.Sources {
			if src.URL == "" || r.seen[src.URL] {
				continue
			}
			r.seen[src.URL] = true
			r.sources = append(r.sources, src)
		}
		return false
	}
	return false
}

// finish runs on the done event: collected citations become a trailing
// markdown "Sources" section.
func (r *reducer) finish() {
	if len(r.sources) == 0 {
		return
	}
	r.text.WriteString("\n\n**Sources:**\n")
	for _, src := range r.sources {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		fmt.Fprintf(&r.text, "- [%s](%s)\n", title, src.URL)
	}
}

// snapshot rebuilds the full content-part array: accumulated text first when
// non-empty, then one part per tool call in registration order.
func (r *reducer) snapshot() []model.ContentPart {
	parts := make([]model.ContentPart, 0, len(r.calls)+1)
	if r.text.Len() > 0 {
		parts = append(parts, model.ContentPart{Type: model.PartText, Text: r.text.String()})
	}
	for _, call := range r.calls {
		copied := *call
		parts = append(parts, model.ContentPart{Type: model.PartToolCall, ToolCall: &copied})
	}
	return parts
}

func (r *reducer) textContent() string {
	return r.text.String()
}
