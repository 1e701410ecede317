package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyVerifier defines the interface for checking a presented API key
// against the configured credential.
type APIKeyVerifier interface {
	// Verify returns nil when key matches, ErrInvalidAPIKey otherwise.
	Verify(key string) error
}

// BcryptVerifier implements APIKeyVerifier against a bcrypt hash, so the
// plaintext credential never lives in configuration.
type BcryptVerifier struct {
	hash []byte
}

// NewBcryptVerifier creates a verifier for the given bcrypt hash.
func NewBcryptVerifier(hash string) (*BcryptVerifier, error) {
	// Reject malformed hashes at construction rather than on first login.
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid bcrypt hash: %w", err)
	}
	return &BcryptVerifier{hash: []byte(hash)}, nil
}

// Verify implements the APIKeyVerifier interface using bcrypt.
func (v *BcryptVerifier) Verify(key string) error {
	if err := bcrypt.CompareHashAndPassword(v.hash, []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}
