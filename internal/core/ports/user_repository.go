package ports

import (
	"context"
	"time"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Emails passed in are expected to be normalized by the caller.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByEmailAndRole scopes the lookup to one role so a user credential
	// cannot authenticate through the admin entrypoint and vice versa.
	FindByEmailAndRole(ctx context.Context, email, role string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// SetOTP stores the OTP hash and expiry for a pending reset.
	SetOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error
	// ClearOTP unsets both OTP fields.
	ClearOTP(ctx context.Context, id string) error
	// ConsumeOTP sets a new password hash and clears the OTP fields in a
	// single conditional update that only matches while the stored OTP hash
	// still equals expectedOTPHash. Returns domain.ErrOTPInvalid when the
	// condition no longer holds (already consumed by a concurrent reset).
	ConsumeOTP(ctx context.Context, id, expectedOTPHash, newPasswordHash string) error
}
