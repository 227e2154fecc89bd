package ports

import (
	"context"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService implements registration, login and the OTP password-reset flow.
// Register and Login come in user/admin pairs: the entrypoint fixes the role.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput, role string) (string, *domain.User, error)
	Login(ctx context.Context, email, password, role string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}
