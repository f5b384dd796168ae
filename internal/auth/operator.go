package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrOperatorNotConfigured = errors.New("operator credentials are not configured")
	ErrInvalidCredentials    = errors.New("invalid credentials")
)

// Operator holds the single console principal. The password is kept only
// as a bcrypt hash.
type Operator struct {
	username string
	hash     []byte
}

// NewOperator hashes password once at startup
func NewOperator(username, password string) (*Operator, error) {
	if username == "" || password == "" {
		return nil, ErrOperatorNotConfigured
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Operator{username: username, hash: hash}, nil
}

// Username returns the configured operator name
func (o *Operator) Username() string {
	return o.username
}

// Verify checks a login attempt
func (o *Operator) Verify(username, password string) error {
	if o == nil {
		return ErrOperatorNotConfigured
	}
	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(o.username)) == 1
	pwErr := bcrypt.CompareHashAndPassword(o.hash, []byte(password))
	if !nameOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
