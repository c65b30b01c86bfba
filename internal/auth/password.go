package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades login latency for brute-force resistance. The default
// cost keeps an interactive sign-in in the hundreds-of-milliseconds range.
const bcryptCost = bcrypt.DefaultCost

// HashPassword produces a self-describing bcrypt digest (algorithm tag,
// cost, and a fresh random salt are embedded in the output), so hashing
// the same plaintext twice yields different digests.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches the digest. It never
// returns an error: malformed or foreign-format digests, empty plaintext,
// and plain mismatches all verify as false.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
