package auth

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/redmonkez12/jobs-api/internal/apperr"
)

const (
	nameMinLen     = 3
	nameMaxLen     = 50
	passwordMinLen = 6
	// bcrypt ignores input past 72 bytes and newer x/crypto rejects it
	passwordMaxBytes = 72
)

var validate = validator.New()

// Registration is register input that passed validation
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Credentials is login input that passed validation
type Credentials struct {
	Email    string
	Password string
}

// ValidateRegistration checks register input field by field and names the first bad field
func ValidateRegistration(name, email, password string) (Registration, error) {
	if name == "" {
		return Registration{}, apperr.BadRequest("name", "please provide name")
	}
	if n := utf8.RuneCountInString(name); n < nameMinLen || n > nameMaxLen {
		return Registration{}, apperr.BadRequest("name", "name must be between 3 and 50 characters")
	}

	if email == "" {
		return Registration{}, apperr.BadRequest("email", "please provide email")
	}
	if err := validate.Var(email, "email"); err != nil {
		return Registration{}, apperr.BadRequest("email", "please provide a valid email")
	}

	if password == "" {
		return Registration{}, apperr.BadRequest("password", "please provide password")
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		return Registration{}, apperr.BadRequest("password", "password must be at least 6 characters")
	}
	if len(password) > passwordMaxBytes {
		return Registration{}, apperr.BadRequest("password", "password must be at most 72 bytes")
	}

	return Registration{Name: name, Email: email, Password: password}, nil
}

// ValidateCredentials checks that both login fields are present
func ValidateCredentials(email, password string) (Credentials, error) {
	if email == "" || password == "" {
		return Credentials{}, apperr.BadRequest("", "please provide email and password")
	}
	return Credentials{Email: email, Password: password}, nil
}
