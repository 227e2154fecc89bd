package domain

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models an account on the site. The same record backs both customer
// and admin identities; Role is fixed by the registration entrypoint and
// never changes afterwards.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	ProfileImage string `json:"profile_image,omitempty"`
	IsActive     bool   `json:"is_active"`

	// OTP fields are only populated while a password reset is in progress.
	// They are always set and cleared together.
	OTPHash      string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NormalizeEmail trims and lowercases an email address. Every lookup and
// every write goes through this so the unique index on email holds.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// OTPRequested reports whether a reset flow is in progress for this user.
func (u *User) OTPRequested() bool {
	return u.OTPHash != "" && !u.OTPExpiresAt.IsZero()
}

// ClearOTP drops both OTP fields. Callers persist the change.
func (u *User) ClearOTP() {
	u.OTPHash = ""
	u.OTPExpiresAt = time.Time{}
}
