package auth

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidToken is the only verification failure callers see.
// Malformed, forged, wrong-algorithm and expired tokens all map to it.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller carried by a token
type Identity struct {
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
}

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	Issue(identity Identity) (string, error)
	Verify(token string) (Identity, error)
}
