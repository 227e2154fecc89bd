package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const eventMediaFolder = "events"

// EventService manages site events and their media galleries.
type EventService struct {
	repo    ports.EventRepository
	storage ports.FileStorage
	log     zerolog.Logger
}

func NewEventService(repo ports.EventRepository, storage ports.FileStorage, log zerolog.Logger) *EventService {
	return &EventService{repo: repo, storage: storage, log: log}
}

func (s *EventService) Create(ctx context.Context, in ports.EventInput) (*domain.Event, error) {
	if in.Title == "" || in.Date == "" {
		return nil, domain.ErrValidation
	}

	images, err := s.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	videos, err := s.uploadAll(ctx, in.Videos)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Description: in.Description,
		Images:      images,
		Videos:      videos,
	}
	return s.repo.Create(ctx, event)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.FindAll(ctx)
}

// Update applies only the provided fields; freshly uploaded media is
// appended to the existing galleries.
func (s *EventService) Update(ctx context.Context, id string, in ports.EventInput) (*domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		event.Title = in.Title
	}
	if in.Date != "" {
		event.Date = in.Date
	}
	if in.Time != "" {
		event.Time = in.Time
	}
	if in.Description != "" {
		event.Description = in.Description
	}

	images, err := s.uploadAll(ctx, in.Images)
	if err != nil {
		return nil, err
	}
	videos, err := s.uploadAll(ctx, in.Videos)
	if err != nil {
		return nil, err
	}
	event.Images = append(event.Images, images...)
	event.Videos = append(event.Videos, videos...)

	return s.repo.Update(ctx, event)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, url := range append(event.Images, event.Videos...) {
		if err := s.storage.Delete(ctx, url); err != nil {
			s.log.Warn().Err(err).Str("url", url).Msg("failed to delete event media")
		}
	}
	return nil
}

func (s *EventService) uploadAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.storage.Upload(ctx, f, eventMediaFolder)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

var _ ports.EventService = (*EventService)(nil)
