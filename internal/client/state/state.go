/*
Package state is the single source of truth of a map client session.

State changes only through Reduce, a pure function of (state, action). Store serializes
dispatches so that transitions never interleave.
*/
package state

import (
	"slices"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
)

// Draft is the unsaved location of the pin being dropped. It has no identity until committed.
type Draft struct {
	Latitude  float64
	Longitude float64
}

// State is the aggregate client state.
type State struct {
	CurrentUser *user.User
	IsAuth      bool
	Draft       *Draft

	// Pins keeps fetch order; it is never re-sorted.
	Pins []pin.Pin

	// SelectedPin references an entry of Pins or is nil.
	SelectedPin *pin.Pin
}

// Initial returns the state of a new session.
func Initial() State {
	return State{Pins: []pin.Pin{}}
}

// Clone returns a deep copy so callers cannot reach into the store's state.
func (s State) Clone() State {
	out := s
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	if s.Draft != nil {
		d := *s.Draft
		out.Draft = &d
	}
	out.Pins = slices.Clone(s.Pins)
	if out.Pins == nil {
		out.Pins = []pin.Pin{}
	}
	if s.SelectedPin != nil {
		p := *s.SelectedPin
		out.SelectedPin = &p
	}
	return out
}

// IndexOf returns the position of pin id in Pins, or -1.
func (s State) IndexOf(id string) int {
	return slices.IndexFunc(s.Pins, func(p pin.Pin) bool { return p.ID == id })
}

// Reduce applies a to s and returns the new state. s is never modified.
// Unknown actions, and actions whose precondition does not hold, return s unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case TypeCreateDraft:
		if s.Draft != nil {
			return s
		}
		s.Draft = &Draft{}
		return s

	case TypeUpdateDraftLocation:
		loc, ok := a.Payload.(Location)
		if !ok {
			return s
		}
		s.Draft = &Draft{Latitude: loc.Latitude, Longitude: loc.Longitude}
		return s

	case TypePlaceDraft:
		loc, ok := a.Payload.(Location)
		if !ok {
			return s
		}
		return Reduce(Reduce(s, CreateDraft()), UpdateDraftLocation(loc.Latitude, loc.Longitude))

	case TypeDeleteDraft:
		s.Draft = nil
		return s

	case TypeGetPins:
		pins, ok := a.Payload.([]pin.Pin)
		if !ok {
			return s
		}
		s.Pins = dedupe(pins)
		s.SelectedPin = refreshSelected(s.SelectedPin, s.Pins)
		return s

	case TypeCreatePin:
		p, ok := a.Payload.(pin.Pin)
		if !ok || p.ID == "" {
			return s
		}
		next := slices.Clone(s.Pins)
		if i := s.IndexOf(p.ID); i >= 0 {
			next[i] = p
		} else {
			next = append(next, p)
		}
		s.Pins = next
		s.Draft = nil
		s.SelectedPin = refreshSelected(s.SelectedPin, s.Pins)
		return s

	case TypeSetPin:
		p, ok := a.Payload.(pin.Pin)
		if !ok || s.IndexOf(p.ID) < 0 {
			return s
		}
		s.SelectedPin = &p
		return s

	case TypeClearPin:
		s.SelectedPin = nil
		return s

	case TypeDeletePin:
		p, ok := a.Payload.(pin.Pin)
		if !ok {
			return s
		}
		i := s.IndexOf(p.ID)
		if i < 0 {
			return s
		}
		s.Pins = slices.Delete(slices.Clone(s.Pins), i, i+1)
		if s.SelectedPin != nil && s.SelectedPin.ID == p.ID {
			s.SelectedPin = nil
		}
		return s

	case TypeLoginUser:
		u, ok := a.Payload.(user.User)
		if !ok {
			return s
		}
		s.CurrentUser = &u
		return s

	case TypeIsLoggedIn:
		loggedIn, ok := a.Payload.(bool)
		if !ok {
			return s
		}
		s.IsAuth = loggedIn
		return s

	case TypeSignoutUser:
		return Initial()

	default:
		return s
	}
}

// dedupe copies pins keeping the first entry of every id.
func dedupe(pins []pin.Pin) []pin.Pin {
	seen := make(map[string]struct{}, len(pins))
	out := make([]pin.Pin, 0, len(pins))
	for _, p := range pins {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// refreshSelected points the selection at the current record of its id, or clears it.
func refreshSelected(selected *pin.Pin, pins []pin.Pin) *pin.Pin {
	if selected == nil {
		return nil
	}
	i := slices.IndexFunc(pins, func(p pin.Pin) bool { return p.ID == selected.ID })
	if i < 0 {
		return nil
	}
	p := pins[i]
	return &p
}
