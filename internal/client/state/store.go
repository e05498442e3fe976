package state

import (
	"sync"

	"github.com/rs/zerolog"

	"pinmap/internal/pkg/logx"
)

// Listener observes every state produced by a dispatch.
// It runs inside the dispatch path and must not call Dispatch itself.
type Listener func(action Action, next State)

// Store owns the session state and applies transitions one at a time.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners []Listener
	logger    zerolog.Logger
}

// NewStore returns a store holding initial.
func NewStore(initial State) *Store {
	return &Store{
		state:  initial.Clone(),
		logger: logx.Component("state"),
	}
}

// Dispatch applies a and returns a copy of the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	s.logger.Debug().
		Str("action", string(a.Type)).
		Int("pins", len(s.state.Pins)).
		Bool("draft", s.state.Draft != nil).
		Msg("Action dispatched")

	for _, l := range s.listeners {
		l(a, s.state.Clone())
	}

	return s.state.Clone()
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Subscribe registers l for every subsequent dispatch.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, l)
}
