package jwt

import (
	"github.com/golang-jwt/jwt"

	"pinmap/internal/app/user"
)

// Payload defines the JWT claims issued by the external identity provider.
// Besides the standard claims it carries the profile fields the map shows for an author.
type Payload struct {
	jwt.StandardClaims

	// ID is the identity provider's stable user identifier.
	ID string `json:"id"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// User converts the claims into the identity consumed by resolvers.
func (p *Payload) User() *user.User {
	return &user.User{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Picture: p.Picture,
	}
}
