package ports

import (
	"context"
	"mime/multipart"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// EventInput carries event fields plus media files to upload.
// On update, empty fields keep their stored value and new media is appended.
type EventInput struct {
	Title       string
	Date        string
	Time        string
	Description string
	Images      []*multipart.FileHeader
	Videos      []*multipart.FileHeader
}

// EventService manages site events and their media galleries.
type EventService interface {
	Create(ctx context.Context, in EventInput) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, id string, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
