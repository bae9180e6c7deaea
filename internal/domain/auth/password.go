package auth

import (
	"golang.org/x/crypto/bcrypt"

	"brandkit-server-go/internal/platform/errors"
)

// HashPassword derives a storable hash from a plaintext password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New(errors.KindAuth, "password.hash", "password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(errors.KindAuth, "password.hash", "failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
