package state

import (
	"sync"
	"testing"
	"time"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
)

func samplePin(id string) pin.Pin {
	return pin.Pin{
		ID:        id,
		Title:     "pin " + id,
		Latitude:  37.77,
		Longitude: -122.43,
		CreatedAt: time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
		Author:    user.User{ID: "author-" + id},
	}
}

func ids(pins []pin.Pin) []string {
	out := make([]string, 0, len(pins))
	for _, p := range pins {
		out = append(out, p.ID)
	}
	return out
}

func assertUniqueIDs(t *testing.T, s State) {
	t.Helper()
	seen := map[string]bool{}
	for _, p := range s.Pins {
		if seen[p.ID] {
			t.Fatalf("duplicate pin id %q in %v", p.ID, ids(s.Pins))
		}
		seen[p.ID] = true
	}
}

func TestCreateDraftIsIdempotent(t *testing.T) {
	s := Reduce(Initial(), CreateDraft())
	if s.Draft == nil || *s.Draft != (Draft{}) {
		t.Fatalf("expected zero draft, got %+v", s.Draft)
	}

	s = Reduce(s, UpdateDraftLocation(10, 20))
	s = Reduce(s, CreateDraft())
	if *s.Draft != (Draft{Latitude: 10, Longitude: 20}) {
		t.Fatalf("CREATE_DRAFT on existing draft changed it: %+v", s.Draft)
	}
}

func TestUpdateDraftLocationSetsValues(t *testing.T) {
	withDraft := Reduce(Initial(), CreateDraft())

	for name, start := range map[string]State{"absent": Initial(), "present": withDraft} {
		s := Reduce(start, UpdateDraftLocation(-33.5, 151.25))
		if s.Draft == nil || *s.Draft != (Draft{Latitude: -33.5, Longitude: 151.25}) {
			t.Errorf("%s: draft = %+v", name, s.Draft)
		}
	}
}

func TestPlaceDraftSequentialClicksKeepOneDraft(t *testing.T) {
	s := Initial()
	clicks := []Location{{1, 2}, {3, 4}, {5, 6}}
	for _, c := range clicks {
		s = Reduce(s, PlaceDraft(c.Latitude, c.Longitude))
	}

	if s.Draft == nil || *s.Draft != (Draft{Latitude: 5, Longitude: 6}) {
		t.Fatalf("expected draft at last click, got %+v", s.Draft)
	}
	if len(s.Pins) != 0 {
		t.Fatalf("clicks must not add pins, got %v", ids(s.Pins))
	}
}

func TestDeleteDraft(t *testing.T) {
	s := Reduce(Reduce(Initial(), PlaceDraft(1, 1)), DeleteDraft())
	if s.Draft != nil {
		t.Fatalf("expected draft cleared")
	}
}

func TestGetPinsDropsDuplicates(t *testing.T) {
	first := samplePin("a")
	second := samplePin("a")
	second.Title = "later"

	s := Reduce(Initial(), GetPins([]pin.Pin{first, samplePin("b"), second}))

	assertUniqueIDs(t, s)
	if got := ids(s.Pins); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected pins %v", got)
	}
	if s.Pins[0].Title != first.Title {
		t.Fatalf("first occurrence must win, got %q", s.Pins[0].Title)
	}
}

func TestGetPinsRefreshesOrClearsSelection(t *testing.T) {
	s := Reduce(Initial(), GetPins([]pin.Pin{samplePin("a"), samplePin("b")}))
	s = Reduce(s, SetPin(samplePin("a")))

	updated := samplePin("a")
	updated.Title = "refreshed"
	kept := Reduce(s, GetPins([]pin.Pin{updated}))
	if kept.SelectedPin == nil || kept.SelectedPin.Title != "refreshed" {
		t.Fatalf("expected selection refreshed, got %+v", kept.SelectedPin)
	}

	gone := Reduce(s, GetPins([]pin.Pin{samplePin("b")}))
	if gone.SelectedPin != nil {
		t.Fatalf("expected selection cleared when its pin disappears")
	}
}

func TestCreatePinAppendsOrReplaces(t *testing.T) {
	s := Reduce(Initial(), PlaceDraft(1, 2))
	s = Reduce(s, GetPins([]pin.Pin{samplePin("a")}))

	s = Reduce(s, CreatePin(samplePin("b")))
	if got := ids(s.Pins); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected b appended, got %v", got)
	}
	if s.Draft != nil {
		t.Fatalf("CREATE_PIN must clear the draft")
	}

	replacement := samplePin("a")
	replacement.Title = "replaced"
	s = Reduce(s, CreatePin(replacement))
	assertUniqueIDs(t, s)
	if len(s.Pins) != 2 || s.Pins[0].Title != "replaced" {
		t.Fatalf("expected a replaced in place, got %+v", s.Pins)
	}
}

func TestSetPinRequiresKnownID(t *testing.T) {
	s := Reduce(Initial(), GetPins([]pin.Pin{samplePin("a")}))
	s = Reduce(s, PlaceDraft(1, 1))

	unknown := Reduce(s, SetPin(samplePin("zzz")))
	if unknown.SelectedPin != nil || unknown.Draft == nil {
		t.Fatalf("SET_PIN for unknown id must be a no-op")
	}

	known := Reduce(s, SetPin(samplePin("a")))
	if known.SelectedPin == nil || known.SelectedPin.ID != "a" {
		t.Fatalf("expected a selected, got %+v", known.SelectedPin)
	}
	if known.Draft == nil || *known.Draft != *s.Draft {
		t.Fatalf("SET_PIN must leave the draft untouched, got %+v", known.Draft)
	}

	cleared := Reduce(known, ClearPin())
	if cleared.SelectedPin != nil {
		t.Fatalf("CLEAR_PIN must clear selection")
	}
}

func TestDeletePin(t *testing.T) {
	s := Reduce(Initial(), GetPins([]pin.Pin{samplePin("a"), samplePin("b")}))
	s = Reduce(s, SetPin(samplePin("b")))

	noop := Reduce(s, DeletePin(samplePin("missing")))
	if got := ids(noop.Pins); len(got) != 2 || noop.SelectedPin == nil {
		t.Fatalf("DELETE_PIN with absent id must be a no-op, got %v", got)
	}

	other := Reduce(s, DeletePin(samplePin("a")))
	if got := ids(other.Pins); len(got) != 1 || got[0] != "b" {
		t.Fatalf("unexpected pins %v", got)
	}
	if other.SelectedPin == nil {
		t.Fatalf("deleting another pin must keep the selection")
	}

	same := Reduce(s, DeletePin(samplePin("b")))
	if same.SelectedPin != nil {
		t.Fatalf("deleting the selected pin must clear the selection")
	}
}

func TestReduceDoesNotAliasPriorState(t *testing.T) {
	prev := Reduce(Initial(), GetPins([]pin.Pin{samplePin("a"), samplePin("b")}))
	snapshot := ids(prev.Pins)

	_ = Reduce(prev, DeletePin(samplePin("a")))
	_ = Reduce(prev, CreatePin(samplePin("c")))

	if got := ids(prev.Pins); len(got) != len(snapshot) || got[0] != snapshot[0] || got[1] != snapshot[1] {
		t.Fatalf("prior state mutated: %v -> %v", snapshot, got)
	}
}

func TestSessionActions(t *testing.T) {
	s := Reduce(Initial(), LoginUser(user.User{ID: "u1", Name: "Ada"}))
	s = Reduce(s, IsLoggedIn(true))
	s = Reduce(s, GetPins([]pin.Pin{samplePin("a")}))

	if s.CurrentUser == nil || s.CurrentUser.ID != "u1" || !s.IsAuth {
		t.Fatalf("expected logged in user, got %+v auth=%v", s.CurrentUser, s.IsAuth)
	}

	s = Reduce(s, SignoutUser())
	if s.CurrentUser != nil || s.IsAuth || len(s.Pins) != 0 {
		t.Fatalf("signout must reset the session, got %+v", s)
	}
}

func TestUnknownAndMalformedActionsAreNoops(t *testing.T) {
	s := Reduce(Initial(), PlaceDraft(1, 2))

	for _, a := range []Action{
		{Type: "NOT_A_TYPE"},
		{Type: TypeUpdateDraftLocation, Payload: "oops"},
		{Type: TypeGetPins, Payload: 42},
		{Type: TypeCreatePin, Payload: pin.Pin{}},
	} {
		got := Reduce(s, a)
		if got.Draft == nil || *got.Draft != *s.Draft || len(got.Pins) != 0 {
			t.Errorf("action %+v changed state: %+v", a, got)
		}
	}
}

func TestStoreSerializesDispatch(t *testing.T) {
	store := NewStore(Initial())

	var (
		mu         sync.Mutex
		observed   int
		duplicated bool
	)
	store.Subscribe(func(_ Action, next State) {
		mu.Lock()
		defer mu.Unlock()
		observed++
		if len(dedupe(next.Pins)) != len(next.Pins) {
			duplicated = true
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Dispatch(CreatePin(samplePin(string(rune('a' + i%5)))))
			store.Dispatch(PlaceDraft(float64(i), float64(i)))
		}(i)
	}
	wg.Wait()

	final := store.State()
	assertUniqueIDs(t, final)
	if len(final.Pins) != 5 {
		t.Fatalf("expected 5 distinct pins, got %v", ids(final.Pins))
	}
	if duplicated {
		t.Fatalf("a listener observed duplicate pin ids")
	}
	if observed != 100 {
		t.Fatalf("expected 100 notifications, got %d", observed)
	}
}

func TestStoreStateIsACopy(t *testing.T) {
	store := NewStore(Initial())
	store.Dispatch(GetPins([]pin.Pin{samplePin("a")}))

	snap := store.State()
	snap.Pins[0].Title = "mutated"

	if store.State().Pins[0].Title == "mutated" {
		t.Fatalf("State must return an independent copy")
	}
}
