// Package password is the credential codec: a thin wrapper around bcrypt
// that hashes and verifies account passwords with a per-deployment cost.
package password

import (
	"errors"
	"fmt"

	"github.com/dkhromov/fittrack/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs below
// bcrypt.DefaultCost are raised to it.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext. bcrypt salts
// internally, so two calls with the same input yield different hashes.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashingFailure, err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is a
// normal false result; a hash that bcrypt cannot parse yields
// common.ErrCorruptHash and is never reported as a match.
func (h *Hasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", common.ErrCorruptHash, err)
}
