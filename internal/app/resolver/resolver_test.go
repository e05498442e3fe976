package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/randx"
)

type fakeImages struct {
	mu      sync.Mutex
	deleted []string
	done    chan struct{}
}

func newFakeImages() *fakeImages {
	return &fakeImages{done: make(chan struct{}, 4)}
}

func (f *fakeImages) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, key)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

type spyRepo struct {
	pin.Repository
	listCalls int
}

func (s *spyRepo) List(ctx context.Context) ([]pin.Pin, error) {
	s.listCalls++
	return s.Repository.List(ctx)
}

func as(id string) context.Context {
	return user.WithCurrentUser(context.Background(), &user.User{ID: id, Name: "user " + id})
}

func TestEveryResolverRequiresIdentity(t *testing.T) {
	repo := &spyRepo{Repository: pin.NewMemoryRepository()}
	r := New(repo, nil)
	anon := context.Background()

	if _, err := r.Me(anon, NoArgs{}); !errs.HasCode(err, errs.ErrUnauthenticated) {
		t.Errorf("me: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := r.ListPins(anon, NoArgs{}); !errs.HasCode(err, errs.ErrUnauthenticated) {
		t.Errorf("listPins: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := r.CreatePin(anon, pin.CreateInput{Title: "x"}); !errs.HasCode(err, errs.ErrUnauthenticated) {
		t.Errorf("createPin: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := r.DeletePin(anon, DeletePinArgs{PinID: "p1"}); !errs.HasCode(err, errs.ErrUnauthenticated) {
		t.Errorf("deletePin: expected ErrUnauthenticated, got %v", err)
	}

	if repo.listCalls != 0 {
		t.Fatalf("repository must not be reached by anonymous callers")
	}
	pins, _ := repo.Repository.List(context.Background())
	if len(pins) != 0 {
		t.Fatalf("anonymous createPin must not store anything")
	}
}

func TestMeReturnsCaller(t *testing.T) {
	r := New(pin.NewMemoryRepository(), nil)

	got, err := r.Me(as("u1"), NoArgs{})
	if err != nil || got.ID != "u1" {
		t.Fatalf("expected u1, got %+v %v", got, err)
	}
}

func TestCreatePinAssignsCallerAsAuthor(t *testing.T) {
	r := New(pin.NewMemoryRepository(), nil)

	p, err := r.CreatePin(as("u1"), pin.CreateInput{Title: "  Cafe  ", Latitude: 10, Longitude: 20})
	if err != nil {
		t.Fatalf("CreatePin: %v", err)
	}
	if p.Author.ID != "u1" || p.Title != "Cafe" || p.ID == "" {
		t.Fatalf("unexpected pin %+v", p)
	}
}

func TestCreatePinRejectsForeignImageKey(t *testing.T) {
	r := New(pin.NewMemoryRepository(), nil)

	foreign, _ := randx.ImageKey("u2", "a.png")
	if _, err := r.CreatePin(as("u1"), pin.CreateInput{Title: "x", Image: foreign}); !errs.HasCode(err, errs.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for another user's image, got %v", err)
	}

	own, _ := randx.ImageKey("u1", "a.png")
	if _, err := r.CreatePin(as("u1"), pin.CreateInput{Title: "x", Image: own}); err != nil {
		t.Fatalf("own image key should be accepted: %v", err)
	}
	if _, err := r.CreatePin(as("u1"), pin.CreateInput{Title: "x", Image: "https://cdn.example.com/a.png"}); err != nil {
		t.Fatalf("external image URL should be accepted: %v", err)
	}
}

func TestDeleteByNonAuthorIsForbidden(t *testing.T) {
	r := New(pin.NewMemoryRepository(), nil)

	p, _ := r.CreatePin(as("u1"), pin.CreateInput{Title: "Mine"})

	if _, err := r.DeletePin(as("u2"), DeletePinArgs{PinID: p.ID}); !errs.HasCode(err, errs.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	pins, _ := r.ListPins(as("u2"), NoArgs{})
	if len(pins) != 1 || pins[0].ID != p.ID {
		t.Fatalf("pins must be unchanged after a forbidden delete, got %v", pins)
	}
}

func TestDeleteByAuthorRemovesPinAndImage(t *testing.T) {
	images := newFakeImages()
	r := New(pin.NewMemoryRepository(), images)

	key, _ := randx.ImageKey("u1", "view.jpg")
	p, _ := r.CreatePin(as("u1"), pin.CreateInput{Title: "Mine", Image: key})

	removed, err := r.DeletePin(as("u1"), DeletePinArgs{PinID: p.ID})
	if err != nil {
		t.Fatalf("DeletePin: %v", err)
	}
	if removed.ID != p.ID {
		t.Fatalf("expected the removed record, got %+v", removed)
	}

	pins, _ := r.ListPins(as("u1"), NoArgs{})
	for _, left := range pins {
		if left.ID == p.ID {
			t.Fatalf("deleted pin still listed")
		}
	}

	select {
	case <-images.done:
	case <-time.After(time.Second):
		t.Fatalf("expected image cleanup to run")
	}
	images.mu.Lock()
	defer images.mu.Unlock()
	if len(images.deleted) != 1 || images.deleted[0] != key {
		t.Fatalf("expected %q to be removed, got %v", key, images.deleted)
	}
}

func TestDeleteMissingPin(t *testing.T) {
	r := New(pin.NewMemoryRepository(), nil)

	if _, err := r.DeletePin(as("u1"), DeletePinArgs{PinID: "nope"}); !errs.HasCode(err, errs.ErrPinNotFound) {
		t.Fatalf("expected ErrPinNotFound, got %v", err)
	}
	if _, err := r.DeletePin(as("u1"), DeletePinArgs{PinID: " "}); !errs.HasCode(err, errs.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams for an empty id, got %v", err)
	}
}
