package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// BcryptHasher hashes passwords and OTP codes with bcrypt. Each call salts
// independently, so hashing the same input twice yields different hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares without an early-exit on mismatch position; bcrypt's
// comparison is the vetted constant-effort path.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
