package ports

import (
	"context"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// CareerRepository defines persistence operations for career applications.
type CareerRepository interface {
	Create(ctx context.Context, app *domain.CareerApplication) (*domain.CareerApplication, error)
	FindByID(ctx context.Context, id string) (*domain.CareerApplication, error)
	// FindAll returns applications newest first.
	FindAll(ctx context.Context) ([]*domain.CareerApplication, error)
	Delete(ctx context.Context, id string) error
}
