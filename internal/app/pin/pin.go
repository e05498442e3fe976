/*
Package pin defines geotagged map annotations and the repository contract that persists them.

Pins are immutable once created; the only mutation besides creation is a delete restricted to
the pin's author.
*/
package pin

import (
	"context"
	"time"

	"pinmap/internal/app/user"
)

// Pin is a persisted geotagged annotation with an owning user.
type Pin struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Image     string    `json:"image,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"createdAt"`
	Author    user.User `json:"author"`
}

// IsAuthoredBy reports whether u owns the pin. A nil user owns nothing.
func (p Pin) IsAuthoredBy(u *user.User) bool {
	return u != nil && u.ID != "" && u.ID == p.Author.ID
}

// NewnessWindow is how long after creation a pin is highlighted as new.
const NewnessWindow = 30 * time.Minute

// IsNew reports whether the pin was created at most NewnessWindow before now.
// It depends on the wall clock and must be evaluated on every render, never stored.
func (p Pin) IsNew(now time.Time) bool {
	return now.Sub(p.CreatedAt) <= NewnessWindow
}

// CreateInput holds the fields a caller supplies when dropping a pin.
// Identity, timestamp and author are assigned by the repository.
type CreateInput struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Content   string  `json:"content" validate:"max=2000"`
	Image     string  `json:"image" validate:"max=512"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// Repository executes pin queries and mutations.
type Repository interface {
	// List returns every pin, ordered by creation time then id.
	List(ctx context.Context) ([]Pin, error)

	// Create stores a new pin authored by author.
	Create(ctx context.Context, author user.User, input CreateInput) (Pin, error)

	// Delete removes pin id when callerID is its author and returns the removed record.
	// It fails with ErrPinNotFound when the pin does not exist and ErrForbidden when
	// the caller is not the author.
	Delete(ctx context.Context, id string, callerID string) (Pin, error)
}
