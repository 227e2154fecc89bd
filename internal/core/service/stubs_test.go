package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// memUserRepo is an in-memory UserRepository used across the service tests.
type memUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.seq)
	copy.CreatedAt = time.Now().UTC()
	copy.UpdatedAt = copy.CreatedAt
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmailAndRole(_ context.Context, email, role string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	updated := cloneUser(user)
	updated.OTPHash = stored.OTPHash
	updated.OTPExpiresAt = stored.OTPExpiresAt
	updated.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = updated
	return cloneUser(updated), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) SetOTP(_ context.Context, id, otpHash string, expiresAt time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.OTPHash = otpHash
	u.OTPExpiresAt = expiresAt
	return nil
}

func (r *memUserRepo) ClearOTP(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ClearOTP()
	return nil
}

func (r *memUserRepo) ConsumeOTP(_ context.Context, id, expectedOTPHash, newPasswordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if u.OTPHash == "" || u.OTPHash != expectedOTPHash {
		return domain.ErrOTPInvalid
	}
	u.PasswordHash = newPasswordHash
	u.ClearOTP()
	return nil
}

// stubMailer records the last message instead of sending it.
type stubMailer struct {
	to      string
	subject string
	body    string
	fail    bool
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) error {
	if m.fail {
		return fmt.Errorf("smtp unreachable")
	}
	m.to, m.subject, m.body = to, subject, body
	return nil
}

// stubCooldown lets tests control the throttle decision.
type stubCooldown struct {
	allow bool
	err   error
	calls int
}

func (c *stubCooldown) Acquire(_ context.Context, _ string) (bool, error) {
	c.calls++
	return c.allow, c.err
}

// stubStorage fakes object storage, recording uploads and deletes.
type stubStorage struct {
	uploads    int
	deleted    []string
	failUpload bool
}

func (s *stubStorage) Upload(_ context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if s.failUpload {
		return "", fmt.Errorf("bucket unavailable")
	}
	s.uploads++
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, s.uploads), nil
}

func (s *stubStorage) Delete(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}
