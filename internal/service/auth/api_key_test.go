package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-key"), bcrypt.MinCost)
	require.NoError(t, err)

	v, err := NewBcryptVerifier(string(hash))
	require.NoError(t, err)

	assert.NoError(t, v.Verify("correct-key"))
	assert.ErrorIs(t, v.Verify("wrong-key"), ErrInvalidAPIKey)
	assert.ErrorIs(t, v.Verify(""), ErrInvalidAPIKey)
}

func TestNewBcryptVerifier_RejectsMalformedHash(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptVerifier("not-a-bcrypt-hash")
	assert.Error(t, err)

	_, err = NewBcryptVerifier("")
	assert.Error(t, err)
}
