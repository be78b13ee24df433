package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor applied to new passwords.
const HashCost = 10

var ErrInvalidCredentials = errors.New("invalid credentials")

func HashPassword(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks plaintext against a stored bcrypt digest. An empty
// digest never matches: accounts without a local credential cannot
// authenticate by password.
func VerifyPassword(plaintext, digest string) error {
	if digest == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
