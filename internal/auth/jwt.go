package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtClaims are the claims stored in a signed token
type jwtClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256-signed JWTs
type JWTService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewJWTService(secret []byte, lifetime time.Duration) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	return &JWTService{
		secret:   secret,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

// Issue signs a token for identity that expires after the configured lifetime
func (s *JWTService) Issue(identity Identity) (string, error) {
	now := s.now()

	claims := jwtClaims{
		UserID: identity.UserID.String(),
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and returns the identity in the token
func (s *JWTService) Verify(tokenStr string) (Identity, error) {
	claims := &jwtClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Name: claims.Name}, nil
}
