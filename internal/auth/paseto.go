package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
)

// PasetoService handles PASETO token creation and validation
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305)
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	lifetime     time.Duration
}

func NewPasetoService(symmetricKey []byte, lifetime time.Duration) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	return &PasetoService{
		symmetricKey: key,
		lifetime:     lifetime,
	}, nil
}

// Issue generates a new PASETO v4.local token carrying identity
func (s *PasetoService) Issue(identity Identity) (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(s.lifetime))
	token.SetString("userId", identity.UserID.String())
	token.SetString("name", identity.Name)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// Verify decrypts a PASETO v4.local token and returns its identity.
// The default parser rules reject expired tokens.
func (s *PasetoService) Verify(tokenStr string) (Identity, error) {
	parser := paseto.NewParser()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	rawID, err := token.GetString("userId")
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	name, err := token.GetString("name")
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Name: name}, nil
}
