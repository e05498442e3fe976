/*
Package api is the HTTP client for the pin server.

Every call is a single attempt; the client never retries. Transport failures are counted by a
circuit breaker, and once it opens calls fail fast with ErrNetworkFailure until the server
recovers. Business errors from the server envelope are returned as *errs.CustomError.
*/
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"pinmap/internal/app/pin"
	"pinmap/internal/app/user"
	"pinmap/internal/pkg/errs"
	"pinmap/internal/pkg/logx"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// envelope mirrors the server's response body.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Viewport is the map camera position.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
}

// MapConfig is the tile configuration served by the pin server.
type MapConfig struct {
	TileToken string   `json:"tileToken"`
	StyleURL  string   `json:"styleUrl"`
	Viewport  Viewport `json:"viewport"`
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBreakerSettings overrides the circuit breaker trip policy.
func WithBreakerSettings(maxFailures uint32, openFor time.Duration) Option {
	return func(c *Client) {
		c.maxFailures = maxFailures
		c.openFor = openFor
	}
}

// Client calls the pin server resolvers.
type Client struct {
	baseURL     *url.URL
	token       string
	http        *http.Client
	cb          *gobreaker.CircuitBreaker[envelope]
	maxFailures uint32
	openFor     time.Duration
	logger      zerolog.Logger
}

// New returns a client for the server at baseURL authenticating with token.
// An empty token makes every call anonymous.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http(s), got %q", baseURL)
	}

	c := &Client{
		baseURL:     u,
		token:       token,
		http:        &http.Client{Timeout: defaultTimeout},
		maxFailures: 5,
		openFor:     30 * time.Second,
		logger:      logx.Component("api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.cb = gobreaker.NewCircuitBreaker[envelope](gobreaker.Settings{
		Name:        "pinmap-api",
		MaxRequests: 1,
		Timeout:     c.openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
		},
	})

	return c, nil
}

// Me returns the identity of the token holder.
func (c *Client) Me(ctx context.Context) (user.User, error) {
	var u user.User
	err := c.call(ctx, http.MethodGet, "/api/me", nil, &u)
	return u, err
}

// ListPins returns every pin in server order.
func (c *Client) ListPins(ctx context.Context) ([]pin.Pin, error) {
	var pins []pin.Pin
	if err := c.call(ctx, http.MethodGet, "/api/pins", nil, &pins); err != nil {
		return nil, err
	}
	return pins, nil
}

// CreatePin drops a new pin and returns the stored record.
func (c *Client) CreatePin(ctx context.Context, input pin.CreateInput) (pin.Pin, error) {
	var p pin.Pin
	err := c.call(ctx, http.MethodPost, "/api/pins", input, &p)
	return p, err
}

// DeletePin removes pin id and returns the removed record.
func (c *Client) DeletePin(ctx context.Context, id string) (pin.Pin, error) {
	if id == "" || id == "." || id == ".." {
		return pin.Pin{}, errs.NewError(errs.ErrInvalidParams)
	}

	var p pin.Pin
	err := c.call(ctx, http.MethodDelete, "/api/pins/"+url.PathEscape(id), nil, &p)
	return p, err
}

// MapConfig returns the tile configuration and default viewport.
func (c *Client) MapConfig(ctx context.Context) (MapConfig, error) {
	var cfg MapConfig
	err := c.call(ctx, http.MethodGet, "/api/map/config", nil, &cfg)
	return cfg, err
}

func (c *Client) call(ctx context.Context, method, path string, body any, out any) error {
	env, err := c.cb.Execute(func() (envelope, error) {
		return c.roundTrip(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn().Str("path", path).Msg("Request rejected by open circuit")
			return errs.NewError(errs.ErrNetworkFailure)
		}
		var customErr *errs.CustomError
		if errors.As(err, &customErr) {
			return customErr
		}
		return errs.NewError(errs.ErrNetworkFailure)
	}

	if env.Code != 0 {
		return errs.FromCode(env.Code, env.Message)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("Failed to decode response data")
		return errs.NewError(errs.ErrUnknown)
	}
	return nil
}

// roundTrip performs one request. Only failures to obtain an envelope are returned as errors,
// so business errors never count against the breaker.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return envelope{}, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("Request failed")
		return envelope{}, errs.NewError(errs.ErrNetworkFailure)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return envelope{}, errs.NewError(errs.ErrNetworkFailure)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn().
			Int("http_status", res.StatusCode).
			Str("path", path).
			Msg("Response is not a JSON envelope")
		return envelope{}, errs.NewError(errs.ErrNetworkFailure)
	}

	return env, nil
}
