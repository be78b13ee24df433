package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSignAndParseHS256(t *testing.T) {
	tok, err := SignHS256(testSecret, 7, "sarah.j@email.com", "Editor", DefaultTokenTTL)
	require.NoError(t, err)

	claims, err := ParseHS256(testSecret, tok)
	require.NoError(t, err)
	require.Equal(t, 7, claims.UserID)
	require.Equal(t, "sarah.j@email.com", claims.Email)
	require.Equal(t, "Editor", claims.Role)
	require.Equal(t, DefaultIssuer, claims.Issuer)
	require.NotEmpty(t, claims.ID)

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	require.Equal(t, DefaultTokenTTL, lifetime)
}

func TestParseHS256WrongSecret(t *testing.T) {
	tok, err := SignHS256(testSecret, 1, "admin@userhub.com", "Admin", DefaultTokenTTL)
	require.NoError(t, err)

	_, err = ParseHS256([]byte("another-secret-another-secret-00"), tok)
	require.Error(t, err)
}

func TestParseHS256Expired(t *testing.T) {
	// Negative TTL puts the expiry well past the parse leeway.
	tok, err := SignHS256(testSecret, 1, "admin@userhub.com", "Admin", -2*time.Minute)
	require.NoError(t, err)

	_, err = ParseHS256(testSecret, tok)
	require.Error(t, err)
}

func TestParseHS256Malformed(t *testing.T) {
	_, err := ParseHS256(testSecret, "not.a.token")
	require.Error(t, err)

	_, err = ParseHS256(testSecret, "")
	require.Error(t, err)
}

func TestNewRandomSecretB64(t *testing.T) {
	a, err := NewRandomSecretB64(32)
	require.NoError(t, err)
	b, err := NewRandomSecretB64(32)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotEmpty(t, a)
}
