// Package password is the opaque credential boundary: hash, verify, and
// random token minting. The storage layer never interprets hash contents.
package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	apperrors "authstore/internal/errors"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Hash derives a storable hash from a plaintext password.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Crypto(fmt.Errorf("failed to hash password: %w", err))
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A mismatch is
// (false, nil); a malformed hash is a Crypto error.
func Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, apperrors.Crypto(fmt.Errorf("failed to parse stored hash: %w", err))
}

// RandToken returns n random alphanumeric characters from crypto/rand.
func RandToken(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", apperrors.Crypto(fmt.Errorf("failed to generate token: %w", err))
		}
		buf[i] = tokenAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
