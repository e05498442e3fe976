package pin

import (
	"context"
	"sort"
	"sync"
	"time"

	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/metrics"
	"pinmap/internal/pkg/randx"
	"pinmap/internal/pkg/validate"
)

// MemoryRepository keeps pins in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	pins map[string]Pin

	// now and newID are replaced in tests.
	now   func() time.Time
	newID func() string
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		pins:  make(map[string]Pin),
		now:   time.Now,
		newID: randx.PinID,
	}
}

func (m *MemoryRepository) List(ctx context.Context) ([]Pin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pins := make([]Pin, 0, len(m.pins))
	for _, p := range m.pins {
		pins = append(pins, p)
	}

	SortStable(pins)

	return pins, nil
}

func (m *MemoryRepository) Create(ctx context.Context, author user.User, input CreateInput) (Pin, error) {
	if err := validate.Struct(input); err != nil {
		return Pin{}, err
	}

	p := Pin{
		ID:        m.newID(),
		Title:     input.Title,
		Content:   input.Content,
		Image:     input.Image,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: m.now().UTC(),
		Author:    author,
	}

	m.mu.Lock()
	m.pins[p.ID] = p
	count := len(m.pins)
	m.mu.Unlock()

	metrics.StoredPins.Set(float64(count))

	return p, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string, callerID string) (Pin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pins[id]
	if !ok {
		return Pin{}, errs.NewError(errs.ErrPinNotFound)
	}
	if p.Author.ID != callerID {
		return Pin{}, errs.NewError(errs.ErrForbidden)
	}

	delete(m.pins, id)
	metrics.StoredPins.Set(float64(len(m.pins)))

	return p, nil
}

// SortStable orders pins by creation time, breaking ties by id.
func SortStable(pins []Pin) {
	sort.Slice(pins, func(i, j int) bool {
		if !pins[i].CreatedAt.Equal(pins[j].CreatedAt) {
			return pins[i].CreatedAt.Before(pins[j].CreatedAt)
		}
		return pins[i].ID < pins[j].ID
	})
}
