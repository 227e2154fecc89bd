package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const (
	// DefaultOTPTTL is how long an issued code stays valid.
	DefaultOTPTTL = 10 * time.Minute

	otpDigits = 1000000 // codes range 000000 to 999999
)

// OTPManager issues and verifies one-time reset codes. It mutates the user
// struct only; persisting the change is the caller's job, which keeps the
// load → mutate → persist cycle explicit.
type OTPManager struct {
	hasher ports.PasswordHasher
	ttl    time.Duration
	now    func() time.Time
}

func NewOTPManager(hasher ports.PasswordHasher, ttl time.Duration) *OTPManager {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPManager{hasher: hasher, ttl: ttl, now: time.Now}
}

// Issue generates a uniformly random 6-digit code, stores its hash and
// expiry on the user, and returns the plaintext for out-of-band delivery.
func (m *OTPManager) Issue(user *domain.User) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpDigits))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())

	hash, err := m.hasher.Hash(code)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}

	user.OTPHash = hash
	user.OTPExpiresAt = m.now().Add(m.ttl).UTC()
	return code, nil
}

// Verify checks a candidate code against the user's stored OTP.
//
// On expiry the user's OTP fields are cleared (the caller must persist) so a
// stale code cannot be retried. On a plain mismatch the fields are kept,
// allowing limited retry. On success the fields are NOT cleared here:
// consumption happens at the reset step, where the password actually changes.
func (m *OTPManager) Verify(user *domain.User, candidate string) error {
	if !user.OTPRequested() {
		return domain.ErrOTPNotRequested
	}
	if m.now().After(user.OTPExpiresAt) {
		user.ClearOTP()
		return domain.ErrOTPExpired
	}
	if !m.hasher.Verify(candidate, user.OTPHash) {
		return domain.ErrOTPInvalid
	}
	return nil
}
