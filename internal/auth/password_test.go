package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("admin123")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotEqual(t, "admin123", digest)

	require.NoError(t, VerifyPassword("admin123", digest))
	require.ErrorIs(t, VerifyPassword("wrong-password", digest), ErrInvalidCredentials)
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPasswordEmptyDigest(t *testing.T) {
	// Accounts without a local credential must never authenticate,
	// whatever the supplied plaintext.
	require.ErrorIs(t, VerifyPassword("", ""), ErrInvalidCredentials)
	require.ErrorIs(t, VerifyPassword("anything", ""), ErrInvalidCredentials)
}

func TestVerifyPasswordGarbageDigest(t *testing.T) {
	require.ErrorIs(t, VerifyPassword("admin123", "not-a-bcrypt-hash"), ErrInvalidCredentials)
}
