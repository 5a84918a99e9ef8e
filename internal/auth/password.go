package auth

import (
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// passwordAlphabet matches the legacy generator character set.
const passwordAlphabet = "abcdefghijklmnoprstuvwxyz1234567890"

// GeneratedPasswordLength is the length of passwords produced for resets.
const GeneratedPasswordLength = 10

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored digest.
// A malformed digest yields false rather than an error.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// GeneratePassword returns a pseudo-random alphanumeric password used for
// password resets.
func GeneratePassword() string {
	buf := make([]byte, GeneratedPasswordLength)
	for i := range buf {
		buf[i] = passwordAlphabet[rand.Intn(len(passwordAlphabet))]
	}
	return string(buf)
}
