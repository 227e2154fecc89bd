package ports

import (
	"context"
	"mime/multipart"
)

// PasswordHasher produces one-way salted hashes and verifies candidates
// against them. Hash is randomized: two calls on the same input yield
// different hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer issues and verifies signed session tokens bound to a user id.
// Tokens are stateless; callers must re-check account state on every use.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id, or one of the domain token errors
	// (ErrTokenExpired, ErrTokenMalformed, ErrTokenSignature).
	Verify(token string) (string, error)
}

// Mailer delivers a single message. Fire-and-forget from the use-case's
// perspective; failures surface as an upstream error, nothing is retried.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// FileStorage stores uploaded files in object storage under a folder prefix
// and returns their public URL.
type FileStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, url string) error
}

// OTPCooldown throttles repeated forgot-password requests per address.
type OTPCooldown interface {
	// Acquire reports whether a new OTP may be issued for email right now,
	// and if so starts the cooldown window.
	Acquire(ctx context.Context, email string) (bool, error)
}
