/*
Package mapview turns map and geolocation events into state transitions and derives what the map
shows from the current state.

The controller never mutates session state directly. Every completion of an asynchronous call
(geolocation, queries, mutations) is applied by dispatching into the store.
*/
package mapview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
	"pinmap/internal/client/state"
	"pinmap/internal/configs"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/logx"
)

// ErrGeolocationUnavailable reports that the device position cannot be determined.
// It is never surfaced to the user.
var ErrGeolocationUnavailable = errors.New("geolocation unavailable")

// Geolocator resolves the device position.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// GeolocatorFunc adapts a function to Geolocator.
type GeolocatorFunc func(ctx context.Context) (Position, error)

func (f GeolocatorFunc) CurrentPosition(ctx context.Context) (Position, error) {
	return f(ctx)
}

// NoGeolocation is a Geolocator for devices without positioning.
var NoGeolocation = GeolocatorFunc(func(context.Context) (Position, error) {
	return Position{}, ErrGeolocationUnavailable
})

// PinService is the remote side of the controller. *api.Client implements it.
type PinService interface {
	Me(ctx context.Context) (user.User, error)
	ListPins(ctx context.Context) ([]pin.Pin, error)
	CreatePin(ctx context.Context, input pin.CreateInput) (pin.Pin, error)
	DeletePin(ctx context.Context, id string) (pin.Pin, error)
}

// Button identifies the mouse button of a click.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// DefaultViewport is shown until the device position is known.
var DefaultViewport = Viewport{
	Latitude:  configs.DefaultLatitude,
	Longitude: configs.DefaultLongitude,
	Zoom:      configs.DefaultZoom,
}

// Controller drives one map session.
type Controller struct {
	store *state.Store
	pins  PinService
	geo   Geolocator

	// mu guards the view-local fields below; they are not part of the session state.
	mu       sync.Mutex
	viewport Viewport
	position *Position
	notice   *Notice

	wg     sync.WaitGroup
	logger zerolog.Logger
}

// NewController returns a controller dispatching into store.
// A nil geo behaves like NoGeolocation.
func NewController(store *state.Store, pins PinService, geo Geolocator) *Controller {
	if geo == nil {
		geo = NoGeolocation
	}
	return &Controller{
		store:    store,
		pins:     pins,
		geo:      geo,
		viewport: DefaultViewport,
		logger:   logx.Component("mapview"),
	}
}

// Mount starts the initial lookups and returns immediately. The geolocation lookup, the
// identity query and the pins query run concurrently and are not ordered relative to each other.
// Call Wait to block until all of them have completed.
func (c *Controller) Mount(ctx context.Context) {
	c.goAsync(func() { c.locate(ctx) })
	c.goAsync(func() { c.loadUser(ctx) })
	c.goAsync(func() { c.loadPins(ctx) })
}

// Wait blocks until every asynchronous call started by the controller has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) goAsync(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

func (c *Controller) locate(ctx context.Context) {
	pos, err := c.geo.CurrentPosition(ctx)
	if err != nil {
		c.logger.Debug().Err(err).Msg("Geolocation unavailable, keeping default viewport")
		return
	}

	c.mu.Lock()
	c.position = &pos
	c.viewport = Viewport{Latitude: pos.Latitude, Longitude: pos.Longitude, Zoom: c.viewport.Zoom}
	c.mu.Unlock()
}

func (c *Controller) loadUser(ctx context.Context) {
	u, err := c.pins.Me(ctx)
	if err != nil {
		c.fail("me", err)
		return
	}
	c.store.Dispatch(state.LoginUser(u))
	c.store.Dispatch(state.IsLoggedIn(true))
}

func (c *Controller) loadPins(ctx context.Context) {
	pins, err := c.pins.ListPins(ctx)
	if err != nil {
		c.fail("listPins", err)
		return
	}
	c.store.Dispatch(state.GetPins(pins))
}

// Click handles a click on empty map space. A primary click places the draft there,
// creating it first when none exists. Other buttons are ignored.
func (c *Controller) Click(button Button, lat, lng float64) {
	if button != ButtonPrimary {
		return
	}
	c.store.Dispatch(state.PlaceDraft(lat, lng))
}

// SelectPin opens the popup of pin id. Unknown ids are ignored.
func (c *Controller) SelectPin(id string) {
	s := c.store.State()
	if i := s.IndexOf(id); i >= 0 {
		c.store.Dispatch(state.SetPin(s.Pins[i]))
	}
}

// ClosePopup closes the pin popup.
func (c *Controller) ClosePopup() {
	c.store.Dispatch(state.ClearPin())
}

// DiscardDraft removes the draft without saving it.
func (c *Controller) DiscardDraft() {
	c.store.Dispatch(state.DeleteDraft())
}

// DeleteSelected deletes the pin shown in the popup. On success the server record is removed
// from the session, the popup closes and any previous notice is cleared. On failure the popup stays open, pins are unchanged
// and the error becomes the current notice.
func (c *Controller) DeleteSelected(ctx context.Context) error {
	selected := c.store.State().SelectedPin
	if selected == nil {
		return nil
	}

	removed, err := c.pins.DeletePin(ctx, selected.ID)
	if err != nil {
		c.fail("deletePin", err)
		return err
	}

	c.store.Dispatch(state.DeletePin(removed))
	c.store.Dispatch(state.ClearPin())
	c.DismissNotice()
	return nil
}

// SaveDraft commits the draft as a pin. The draft and any previous notice are cleared only once
// the server confirmed it.
func (c *Controller) SaveDraft(ctx context.Context, title, image, content string) (pin.Pin, error) {
	draft := c.store.State().Draft
	if draft == nil {
		return pin.Pin{}, errs.NewError(errs.ErrInvalidParams)
	}

	created, err := c.pins.CreatePin(ctx, pin.CreateInput{
		Title:     title,
		Content:   content,
		Image:     image,
		Latitude:  draft.Latitude,
		Longitude: draft.Longitude,
	})
	if err != nil {
		c.fail("createPin", err)
		return pin.Pin{}, err
	}

	c.store.Dispatch(state.CreatePin(created))
	c.DismissNotice()
	return created, nil
}

// DismissNotice clears the current notice.
func (c *Controller) DismissNotice() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = nil
}

func (c *Controller) fail(operation string, err error) {
	n := noticeFor(err)
	c.logger.Warn().Err(err).Str("operation", operation).Int("code", n.Code).Msg("Request failed")

	c.mu.Lock()
	c.notice = &n
	c.mu.Unlock()
}

func noticeFor(err error) Notice {
	customErr := errs.From(err)
	kind := NoticeMessage
	if customErr.Code == errs.ErrUnauthenticated {
		kind = NoticeReauthenticate
	}
	return Notice{Kind: kind, Code: customErr.Code, Message: customErr.Message}
}

// Render derives the view at wall clock time now. Newness is evaluated here on every call.
func (c *Controller) Render(now time.Time) View {
	s := c.store.State()

	c.mu.Lock()
	view := View{Viewport: c.viewport}
	position := c.position
	if c.notice != nil {
		n := *c.notice
		view.Notice = &n
	}
	c.mu.Unlock()

	markers := make([]Marker, 0, len(s.Pins)+2)
	if position != nil {
		markers = append(markers, Marker{Kind: MarkerUser, Position: *position, Color: ColorUser})
	}
	if s.Draft != nil {
		markers = append(markers, Marker{
			Kind:     MarkerDraft,
			Position: Position{Latitude: s.Draft.Latitude, Longitude: s.Draft.Longitude},
			Color:    ColorDraft,
		})
	}
	for _, p := range s.Pins {
		isNew := p.IsNew(now)
		color := ColorPin
		if isNew {
			color = ColorNewPin
		}
		markers = append(markers, Marker{
			Kind:     MarkerPin,
			PinID:    p.ID,
			Position: Position{Latitude: p.Latitude, Longitude: p.Longitude},
			Color:    color,
			New:      isNew,
		})
	}
	view.Markers = markers

	if s.SelectedPin != nil {
		view.Popup = &Popup{
			Pin:       *s.SelectedPin,
			Anchor:    Position{Latitude: s.SelectedPin.Latitude, Longitude: s.SelectedPin.Longitude},
			CanDelete: s.SelectedPin.IsAuthoredBy(s.CurrentUser),
		}
	}

	return view
}
