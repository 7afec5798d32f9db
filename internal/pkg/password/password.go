package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the minimum accepted password length
const MinLength = 8

var ErrTooShort = errors.New("password must be at least 8 characters")

// Hash hashes a plaintext password with bcrypt
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a plaintext password against its hash
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
