// Package uistate holds the single externally-owned store for shared UI
// selections: chat provider/model, panel visibility, and the page context
// the assistant sees. Components receive a Store by injection so tests can
// swap in a double.
package uistate

import (
	"sync"

	"capitolview/internal/model"
)

type State struct {
	Provider      string             `json:"provider"`
	Model         string             `json:"model"`
	PanelOpen     bool               `json:"panel_open"`
	PanelExpanded bool               `json:"panel_expanded"`
	PageContext   *model.PageContext `json:"page_context,omitempty"`
}

type Store interface {
	Get() State
	SetProvider(provider, modelName string)
	SetPanel(open, expanded bool)
	SetPageContext(ctx *model.PageContext)
	Subscribe(fn func(State)) (unsubscribe func())
}

type MemoryStore struct {
	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int
}

func NewMemoryStore(initial State) *MemoryStore {
	return &MemoryStore{
		state: initial,
		subs:  make(map[int]func(State)),
	}
}

func (s *MemoryStore) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *MemoryStore) SetProvider(provider, modelName string) {
	s.update(func(st *State) {
		st.Provider = provider
		st.Model = modelName
	})
}

func (s *MemoryStore) SetPanel(open, expanded bool) {
	s.update(func(st *State) {
		st.PanelOpen = open
		st.PanelExpanded = expanded
	})
}

func (s *MemoryStore) SetPageContext(ctx *model.PageContext) {
	s.update(func(st *State) {
		st.PageContext = ctx
	})
}

func (s *MemoryStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// update mutates under the lock, then notifies subscribers outside it so a
// subscriber reading the store back cannot deadlock.
func (s *MemoryStore) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	state := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
