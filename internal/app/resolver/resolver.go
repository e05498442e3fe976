/*
Package resolver exposes the pin operations as transport-agnostic resolvers.

Each resolver is plain business logic lifted through the authorization gate; the HTTP layer
only decodes arguments and encodes results.
*/
package resolver

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pinmap/internal/app/gate"
	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/logx"
	"pinmap/internal/pkg/metrics"
	"pinmap/internal/pkg/randx"
)

// Operation names used for logging and metrics.
const (
	OpMe        = "me"
	OpListPins  = "listPins"
	OpCreatePin = "createPin"
	OpDeletePin = "deletePin"
)

// imageCleanupTimeout bounds the background removal of a deleted pin's image.
const imageCleanupTimeout = 10 * time.Second

// NoArgs is the argument type of operations that take none.
type NoArgs struct{}

// DeletePinArgs identifies the pin to delete.
type DeletePinArgs struct {
	PinID string `json:"pinId"`
}

// ImageRemover deletes stored pin images. storage.StorageService satisfies it.
type ImageRemover interface {
	Delete(ctx context.Context, key string) error
}

// Resolvers holds every gated operation of the pin API.
type Resolvers struct {
	Me        gate.Resolver[NoArgs, user.User]
	ListPins  gate.Resolver[NoArgs, []pin.Pin]
	CreatePin gate.Resolver[pin.CreateInput, pin.Pin]
	DeletePin gate.Resolver[DeletePinArgs, pin.Pin]
}

type service struct {
	repo   pin.Repository
	images ImageRemover
	logger zerolog.Logger
}

// New builds the resolvers over repo. images may be nil, in which case
// images of deleted pins are left in storage.
func New(repo pin.Repository, images ImageRemover) *Resolvers {
	s := &service{
		repo:   repo,
		images: images,
		logger: logx.Component("resolver"),
	}

	return &Resolvers{
		Me:        gate.Authenticated(OpMe, s.me),
		ListPins:  gate.Authenticated(OpListPins, s.listPins),
		CreatePin: gate.Authenticated(OpCreatePin, s.createPin),
		DeletePin: gate.Authenticated(OpDeletePin, s.deletePin),
	}
}

func (s *service) me(ctx context.Context, _ NoArgs) (user.User, error) {
	return *user.CurrentUser(ctx), nil
}

func (s *service) listPins(ctx context.Context, _ NoArgs) ([]pin.Pin, error) {
	pins, err := s.repo.List(ctx)
	record(OpListPins, err)
	return pins, err
}

func (s *service) createPin(ctx context.Context, input pin.CreateInput) (pin.Pin, error) {
	caller := user.CurrentUser(ctx)

	input.Title = strings.TrimSpace(input.Title)
	input.Image = strings.TrimSpace(input.Image)

	// Stored image keys must come from the caller's own uploads; external URLs are kept as is.
	if strings.HasPrefix(input.Image, randx.ImageKeyPrefix) && !randx.IsImageKeyOf(input.Image, caller.ID) {
		err := errs.NewError(errs.ErrInvalidParams)
		record(OpCreatePin, err)
		return pin.Pin{}, err
	}

	p, err := s.repo.Create(ctx, *caller, input)
	record(OpCreatePin, err)
	if err != nil {
		return pin.Pin{}, err
	}

	s.logger.Info().Str("pin_id", p.ID).Str("author_id", caller.ID).Msg("Pin created")
	return p, nil
}

func (s *service) deletePin(ctx context.Context, args DeletePinArgs) (pin.Pin, error) {
	caller := user.CurrentUser(ctx)

	if strings.TrimSpace(args.PinID) == "" {
		return pin.Pin{}, errs.NewError(errs.ErrInvalidParams)
	}

	removed, err := s.repo.Delete(ctx, args.PinID, caller.ID)
	record(OpDeletePin, err)
	if err != nil {
		return pin.Pin{}, err
	}

	s.logger.Info().Str("pin_id", removed.ID).Str("author_id", caller.ID).Msg("Pin deleted")

	if s.images != nil && randx.IsImageKeyOf(removed.Image, removed.Author.ID) {
		go s.removeImage(removed.Image)
	}

	return removed, nil
}

func (s *service) removeImage(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), imageCleanupTimeout)
	defer cancel()

	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to remove image of deleted pin")
	}
}

func record(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"

		var customErr *errs.CustomError
		if errors.As(err, &customErr) {
			result = strconv.Itoa(customErr.Code)
		}
	}
	metrics.PinOperations.WithLabelValues(operation, result).Inc()
}
