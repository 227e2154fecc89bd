package ports

import (
	"context"
	"mime/multipart"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// UpdateProfileInput carries profile changes for the authenticated user.
// Password and ProfileImage are optional.
type UpdateProfileInput struct {
	Name         string
	Email        string
	Password     string
	ProfileImage *multipart.FileHeader
}

// UserService covers profile and admin account management.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	UploadPhoto(ctx context.Context, userID string, file *multipart.FileHeader) (string, error)
	// ToggleStatus flips IsActive on the target account.
	ToggleStatus(ctx context.Context, id string) (*domain.User, error)
	// Delete removes an account. actorID is the requesting admin; deleting
	// one's own account is rejected with domain.ErrSelfDelete.
	Delete(ctx context.Context, actorID, id string) error
}
