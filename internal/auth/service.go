package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redmonkez12/jobs-api/internal/apperr"
	"github.com/redmonkez12/jobs-api/internal/user"
)

const invalidCredentialsMessage = "invalid credentials"

// UserStore is the credential store the service depends on
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Result is returned by Register and Login
type Result struct {
	User  *user.User
	Token string
}

// Service handles authentication business logic
type Service struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenService

	// dummyHash is verified against when the email is unknown so both
	// login failure paths cost one hash comparison.
	dummyHash string
}

// NewService builds the service and the hash used for unknown-email logins
func NewService(users UserStore, hasher PasswordHasher, tokens TokenService) (*Service, error) {
	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare fallback password hash: %w", err)
	}

	return &Service{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a new account and issues a token for it
func (s *Service) Register(ctx context.Context, name, email, password string) (*Result, error) {
	in, err := ValidateRegistration(name, email, password)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	newUser, err := s.users.Create(ctx, in.Name, in.Email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, apperr.Conflict("email already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	return s.issue(newUser)
}

// Login authenticates by email and password and issues a token.
// Unknown email and wrong password return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	in, err := ValidateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(in.Password, s.dummyHash)
			return nil, apperr.Unauthenticated(invalidCredentialsMessage)
		}
		return nil, apperr.Internal(fmt.Errorf("failed to get user: %w", err))
	}

	if !s.hasher.Verify(in.Password, existingUser.PasswordHash) {
		return nil, apperr.Unauthenticated(invalidCredentialsMessage)
	}

	return s.issue(existingUser)
}

func (s *Service) issue(u *user.User) (*Result, error) {
	token, err := s.tokens.Issue(Identity{UserID: u.ID, Name: u.Name})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("failed to issue token: %w", err))
	}
	return &Result{User: u, Token: token}, nil
}
