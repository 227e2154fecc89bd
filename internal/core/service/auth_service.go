package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// AuthService implements registration, login and the OTP reset flow.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	otp      *OTPManager
	mailer   ports.Mailer
	cooldown ports.OTPCooldown
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	otp *OTPManager,
	mailer ports.Mailer,
	cooldown ports.OTPCooldown,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		otp:      otp,
		mailer:   mailer,
		cooldown: cooldown,
		log:      log,
	}
}

// Register creates an account with the role fixed by the calling entrypoint
// and returns a fresh session token. No token is issued when persistence
// fails.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput, role string) (string, *domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return "", nil, domain.ErrValidation
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return "", nil, domain.ErrValidation
	}

	email := domain.NormalizeEmail(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, fmt.Errorf("register: issue token: %w", err)
	}
	return token, created, nil
}

// Login authenticates an account through the entrypoint matching its role.
// A user credential presented to the admin entrypoint fails as if the
// account did not exist.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrValidation
	}

	user, err := s.repo.FindByEmailAndRole(ctx, domain.NormalizeEmail(email), role)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !user.IsActive {
		return "", nil, domain.ErrAccountInactive
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword issues an OTP and mails it to the account's address.
// The OTP fields are persisted before delivery is attempted; a delivery
// failure surfaces as an error but leaves the pending reset in place.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}

	if s.cooldown != nil {
		ok, err := s.cooldown.Acquire(ctx, user.Email)
		if err != nil {
			// Cooldown is best-effort; a store outage must not block resets.
			s.log.Warn().Err(err).Msg("otp cooldown check failed, issuing anyway")
		} else if !ok {
			return domain.ErrOTPCooldown
		}
	}

	code, err := s.otp.Issue(user)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	if err := s.repo.SetOTP(ctx, user.ID, user.OTPHash, user.OTPExpiresAt); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	body := fmt.Sprintf("Your OTP is: %s. It expires in %d minutes.", code, int(s.otp.ttl.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, "Your OTP for password reset", body); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("otp mail delivery failed")
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

// VerifyOTP checks a candidate code without consuming it. An expired code
// clears the pending reset; a wrong code leaves it in place for retry.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}

	if err := s.otp.Verify(user, code); err != nil {
		if errors.Is(err, domain.ErrOTPExpired) {
			if clearErr := s.repo.ClearOTP(ctx, user.ID); clearErr != nil {
				s.log.Error().Err(clearErr).Str("user_id", user.ID).Msg("failed to clear expired otp")
			}
		}
		return err
	}
	return nil
}

// ResetPassword re-verifies the OTP and swaps the password. The repository
// consumes the OTP with a conditional update keyed on the hash just
// verified, so two racing resets cannot both spend one code.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if email == "" || code == "" || newPassword == "" {
		return domain.ErrValidation
	}

	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}

	otpHash := user.OTPHash
	if err := s.otp.Verify(user, code); err != nil {
		if errors.Is(err, domain.ErrOTPExpired) {
			if clearErr := s.repo.ClearOTP(ctx, user.ID); clearErr != nil {
				s.log.Error().Err(clearErr).Str("user_id", user.ID).Msg("failed to clear expired otp")
			}
		}
		return err
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}
	if err := s.repo.ConsumeOTP(ctx, user.ID, otpHash, newHash); err != nil {
		return err
	}
	return nil
}

var _ ports.AuthService = (*AuthService)(nil)
