package handler

import (
	"time"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// envelope is the response convention for every endpoint:
// {success, message, data?/user?/token?}. Errors render through the central
// error handler with the same success/message shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	User    any    `json:"user,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func ok(message string) envelope {
	return envelope{Success: true, Message: message}
}

func (e envelope) withToken(token string) envelope {
	e.Token = token
	return e
}

func (e envelope) withUser(user any) envelope {
	e.User = user
	return e
}

func (e envelope) withData(data any) envelope {
	e.Data = data
	return e
}

func (e envelope) withCount(n int) envelope {
	e.Count = &n
	return e
}

// userResponse is the single serialization shape for user records. It is the
// only path a user ever leaves the API through, and it has no hash or OTP
// fields, so no response can leak credentials regardless of handler.
type userResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profile_image,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}
