package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

type authFixture struct {
	svc      *AuthService
	repo     *memUserRepo
	mailer   *stubMailer
	cooldown *stubCooldown
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repo := newMemUserRepo()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	mailer := &stubMailer{}
	cooldown := &stubCooldown{allow: true}
	svc := NewAuthService(
		repo,
		hasher,
		NewJWTIssuer("test-secret", time.Hour),
		NewOTPManager(hasher, DefaultOTPTTL),
		mailer,
		cooldown,
		zerolog.Nop(),
	)
	return &authFixture{svc: svc, repo: repo, mailer: mailer, cooldown: cooldown}
}

func (f *authFixture) register(t *testing.T, email, password, role string) *domain.User {
	t.Helper()
	_, user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: password,
	}, role)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// mailedOTP pulls the plaintext code out of the recorded mail body.
func (f *authFixture) mailedOTP(t *testing.T) string {
	t.Helper()
	const prefix = "Your OTP is: "
	body := f.mailer.body
	i := strings.Index(body, prefix)
	if i < 0 {
		t.Fatalf("no OTP found in mail body %q", body)
	}
	code := body[i+len(prefix):]
	if len(code) < 6 {
		t.Fatalf("mail body too short: %q", body)
	}
	return code[:6]
}

func TestAuthService_RegisterIssuesToken(t *testing.T) {
	f := newAuthFixture(t)

	token, user, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Jane",
		Email:    "Jane@Example.com",
		Password: "hunter22",
	}, domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if !user.IsActive {
		t.Fatal("new accounts should be active")
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)

	_, _, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Imposter",
		Email:    "jane@example.com",
		Password: "other-pass",
	}, domain.RoleAdmin)
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_RegisterRejectsUnknownRole(t *testing.T) {
	f := newAuthFixture(t)
	_, _, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "hunter22",
	}, "superuser")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_LoginRoleSplit(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)

	if _, _, err := f.svc.Login(context.Background(), "jane@example.com", "hunter22", domain.RoleUser); err != nil {
		t.Fatalf("user login failed: %v", err)
	}

	// The same credentials presented at the admin entrypoint must fail as
	// if the account did not exist.
	_, _, err := f.svc.Login(context.Background(), "jane@example.com", "hunter22", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)

	_, _, err := f.svc.Login(context.Background(), "jane@example.com", "wrong", domain.RoleUser)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginInactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	f.repo.users[user.ID].IsActive = false

	_, _, err := f.svc.Login(context.Background(), "jane@example.com", "hunter22", domain.RoleUser)
	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestAuthService_ForgotPasswordMailsCode(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "jane@example.com", "hunter22", domain.RoleUser)

	if err := f.svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if f.mailer.to != "jane@example.com" {
		t.Fatalf("mail sent to %s", f.mailer.to)
	}
	code := f.mailedOTP(t)
	if strings.Contains(f.repo.users[user.ID].OTPHash, code) {
		t.Fatal("OTP stored in plaintext")
	}
	if err := f.svc.VerifyOTP(context.Background(), "jane@example.com", code); err != nil {
		t.Fatalf("mailed code did not verify: %v", err)
	}
}

func TestAuthService_ForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if f.cooldown.calls != 0 {
		t.Fatal("cooldown consulted for unknown account")
	}
}

func TestAuthService_ForgotPasswordCooldown(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	f.cooldown.allow = false

	err := f.svc.ForgotPassword(context.Background(), "jane@example.com")
	if !errors.Is(err, domain.ErrOTPCooldown) {
		t.Fatalf("expected ErrOTPCooldown, got %v", err)
	}
	if f.mailer.to != "" {
		t.Fatal("mail sent despite cooldown")
	}
}

func TestAuthService_ForgotPasswordCooldownOutage(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	f.cooldown.err = errors.New("redis down")

	// A throttle store outage must not block the reset flow.
	if err := f.svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if f.mailer.to == "" {
		t.Fatal("no mail sent")
	}
}

func TestAuthService_ForgotPasswordMailFailureKeepsOTP(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	f.mailer.fail = true

	err := f.svc.ForgotPassword(context.Background(), "jane@example.com")
	if !errors.Is(err, domain.ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
	if !f.repo.users[user.ID].OTPRequested() {
		t.Fatal("pending reset lost after delivery failure")
	}
}

func TestAuthService_VerifyOTPWrongCodeAllowsRetry(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	if err := f.svc.ForgotPassword(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := f.mailedOTP(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := f.svc.VerifyOTP(context.Background(), "jane@example.com", wrong); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
	if err := f.svc.VerifyOTP(context.Background(), "jane@example.com", code); err != nil {
		t.Fatalf("correct code rejected after a wrong attempt: %v", err)
	}
}

func TestAuthService_VerifyOTPWithoutRequest(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)

	err := f.svc.VerifyOTP(context.Background(), "jane@example.com", "123456")
	if !errors.Is(err, domain.ErrOTPNotRequested) {
		t.Fatalf("expected ErrOTPNotRequested, got %v", err)
	}
}

func TestAuthService_ResetPasswordFlow(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := f.mailedOTP(t)

	if err := f.svc.VerifyOTP(ctx, "jane@example.com", code); err != nil {
		t.Fatalf("VerifyOTP returned error: %v", err)
	}
	if err := f.svc.ResetPassword(ctx, "jane@example.com", code, "new-password"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	if _, _, err := f.svc.Login(ctx, "jane@example.com", "hunter22", domain.RoleUser); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still authenticates: %v", err)
	}
	if _, _, err := f.svc.Login(ctx, "jane@example.com", "new-password", domain.RoleUser); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_ResetPasswordSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := f.mailedOTP(t)

	if err := f.svc.ResetPassword(ctx, "jane@example.com", code, "first-new"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	err := f.svc.ResetPassword(ctx, "jane@example.com", code, "second-new")
	if !errors.Is(err, domain.ErrOTPNotRequested) && !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("spent code accepted twice: %v", err)
	}
	if _, _, err := f.svc.Login(ctx, "jane@example.com", "first-new", domain.RoleUser); err != nil {
		t.Fatalf("first reset lost: %v", err)
	}
}

func TestAuthService_ResetPasswordWrongCode(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, "jane@example.com", "hunter22", domain.RoleUser)
	ctx := context.Background()

	if err := f.svc.ForgotPassword(ctx, "jane@example.com"); err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	code := f.mailedOTP(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := f.svc.ResetPassword(ctx, "jane@example.com", wrong, "new-password"); !errors.Is(err, domain.ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
	if !f.repo.users[user.ID].OTPRequested() {
		t.Fatal("pending reset cleared by a wrong code")
	}
	if err := f.svc.ResetPassword(ctx, "jane@example.com", code, "new-password"); err != nil {
		t.Fatalf("correct code rejected after a wrong attempt: %v", err)
	}
}
