package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost trades hashing latency against brute-force resistance.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of the plaintext. The salt
// is generated per call, so hashing the same password twice yields
// different digests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored bcrypt hash.
// The comparison is constant-time, and a malformed hash yields false
// rather than an error so callers have a single boolean decision point.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
