package ports

import (
	"context"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// FindAll returns events newest first.
	FindAll(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, event *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
