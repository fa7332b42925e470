// Package auth issues and checks operator credentials: a bcrypt-hashed
// password for logging in and HS256 bearer tokens for mutating RPCs.
package auth

import (
	"context"
	"errors"
)

// MinPasswordLength is the shortest operator password HashPassword accepts.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid operator or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// Authenticator verifies an operator's login credential.
type Authenticator interface {
	// Authenticate returns ErrInvalidCredentials unless credential is the
	// operator's password.
	Authenticate(ctx context.Context, operator, credential string) error
}

// CheckPasswordStrength returns ErrWeakPassword for passwords shorter than
// MinPasswordLength.
func CheckPasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
