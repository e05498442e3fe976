/*
Package user contains the caller identity as consumed by the map server and client.

Users are issued and authenticated by an external provider; this package only carries the
resolved identity through a context.Context.
*/
package user

import "context"

// User represents the authenticated author of pins.
type User struct {
	// ID is the stable identifier assigned by the identity provider.
	ID string `json:"id"`

	// Name is the display name shown next to a pin.
	Name string `json:"name"`

	// Email is the contact address of the user.
	Email string `json:"email"`

	// Picture is the URL of the user's avatar.
	Picture string `json:"picture,omitempty"`
}

type contextKey struct{}

// WithCurrentUser returns a copy of ctx carrying u as the resolved caller.
// A nil u leaves the caller anonymous.
func WithCurrentUser(ctx context.Context, u *User) context.Context {
	if u == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, u)
}

// CurrentUser returns the resolved caller, or nil when the request is anonymous.
func CurrentUser(ctx context.Context) *User {
	u, ok := ctx.Value(contextKey{}).(*User)
	if !ok {
		return nil
	}
	return u
}
