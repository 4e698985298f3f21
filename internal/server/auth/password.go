package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user matches a login, so an
// unknown email costs the same bcrypt round as a wrong password.
var dummyHash = mustHash("not-a-real-password")

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// bcrypt compares in constant time.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck performs a throwaway comparison and always reports false.
func BurnPasswordCheck(password string) bool {
	_ = VerifyPassword(dummyHash, password)
	return false
}

func mustHash(password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}
