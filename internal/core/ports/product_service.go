package ports

import (
	"context"
	"mime/multipart"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// ProductInput carries product fields plus image files to upload.
type ProductInput struct {
	Name           string
	Brand          string
	Category       string
	Model          string
	SKU            string
	Discount       float64
	Stock          int
	Warranty       string
	Features       []string
	Specifications map[string]string
	Usage          string
	Status         string
	Images         []*multipart.FileHeader
}

// ProductService manages the product catalog.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
