package ports

import (
	"context"
	"mime/multipart"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// CareerInput carries a job application plus the resume file.
type CareerInput struct {
	Name        string
	Email       string
	CoverLetter string
	Resume      *multipart.FileHeader
}

// CareerService manages career applications.
type CareerService interface {
	Apply(ctx context.Context, in CareerInput) (*domain.CareerApplication, error)
	GetByID(ctx context.Context, id string) (*domain.CareerApplication, error)
	List(ctx context.Context) ([]*domain.CareerApplication, error)
	Delete(ctx context.Context, id string) error
}
