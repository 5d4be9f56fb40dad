package auth

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a login names an unknown account so the
// failure takes roughly as long as a wrong password.
var (
	dummyHash     []byte
	dummyHashOnce sync.Once
)

// HashPassword creates a salted bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}

// BurnCompare runs a throwaway comparison; the result is always ignored.
func BurnCompare(providedPassword string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("mediaminder-dummy"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(providedPassword))
}
