package domain

import "errors"

// Validation / conflict (400).
var (
	ErrValidation = errors.New("missing or malformed input")
	ErrEmailTaken = errors.New("email already registered")
	ErrSKUTaken   = errors.New("sku already exists")
)

// Authentication (401).
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account deactivated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenSignature     = errors.New("token signature invalid")
)

// Authorization (403).
var (
	ErrForbidden  = errors.New("access forbidden")
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// Not found (404).
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrApplicationNotFound = errors.New("application not found")
)

// OTP flow (400, mirrors the reset state machine).
var (
	ErrOTPNotRequested = errors.New("no password reset in progress")
	ErrOTPExpired      = errors.New("otp expired")
	ErrOTPInvalid      = errors.New("invalid otp")
	ErrOTPCooldown     = errors.New("otp recently sent, wait before retrying")
)

// Collaborator failures (500).
var (
	ErrMailDelivery  = errors.New("mail delivery failed")
	ErrUploadFailed  = errors.New("file upload failed")
)
