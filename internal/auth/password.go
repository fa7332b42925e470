package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Ensure OperatorAuthenticator implements Authenticator
var _ Authenticator = (*OperatorAuthenticator)(nil)

// OperatorAuthenticator checks credentials against a single operator account
// whose bcrypt password hash comes from configuration.
type OperatorAuthenticator struct {
	operator     string
	passwordHash []byte
}

// NewOperatorAuthenticator creates an authenticator for one operator.
func NewOperatorAuthenticator(operator, passwordHash string) *OperatorAuthenticator {
	return &OperatorAuthenticator{
		operator:     operator,
		passwordHash: []byte(passwordHash),
	}
}

// Authenticate verifies the operator name and password.
func (a *OperatorAuthenticator) Authenticate(_ context.Context, operator, credential string) error {
	if len(a.passwordHash) == 0 {
		return ErrInvalidCredentials
	}

	// Compare password hash even on a wrong name so timing does not leak it
	hashErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(credential))
	nameOK := subtle.ConstantTimeCompare([]byte(operator), []byte(a.operator)) == 1
	if hashErr != nil || !nameOK {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns the bcrypt hash to store in configuration.
func HashPassword(password string) (string, error) {
	if err := CheckPasswordStrength(password); err != nil {
		return "", err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
