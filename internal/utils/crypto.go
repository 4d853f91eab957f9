package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies that the password matches the bcrypt hash.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsBcryptHash reports whether the stored credential carries a bcrypt
// marker. Anything else is treated as a legacy plaintext value pending
// upgrade on the next successful login.
func IsBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2")
}
