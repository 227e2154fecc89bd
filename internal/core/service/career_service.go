package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const resumeFolder = "resumes"

// CareerService manages job applications.
type CareerService struct {
	repo    ports.CareerRepository
	storage ports.FileStorage
	log     zerolog.Logger
}

func NewCareerService(repo ports.CareerRepository, storage ports.FileStorage, log zerolog.Logger) *CareerService {
	return &CareerService{repo: repo, storage: storage, log: log}
}

// Apply stores the resume and persists the application. Name, email and the
// resume file are all required.
func (s *CareerService) Apply(ctx context.Context, in ports.CareerInput) (*domain.CareerApplication, error) {
	if in.Name == "" || in.Email == "" || in.Resume == nil {
		return nil, domain.ErrValidation
	}

	url, err := s.storage.Upload(ctx, in.Resume, resumeFolder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	app := &domain.CareerApplication{
		Name:        in.Name,
		Email:       domain.NormalizeEmail(in.Email),
		Resume:      url,
		CoverLetter: in.CoverLetter,
	}
	return s.repo.Create(ctx, app)
}

func (s *CareerService) GetByID(ctx context.Context, id string) (*domain.CareerApplication, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CareerService) List(ctx context.Context) ([]*domain.CareerApplication, error) {
	return s.repo.FindAll(ctx)
}

func (s *CareerService) Delete(ctx context.Context, id string) error {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if app.Resume != "" {
		if err := s.storage.Delete(ctx, app.Resume); err != nil {
			s.log.Warn().Err(err).Str("url", app.Resume).Msg("failed to delete resume")
		}
	}
	return nil
}

var _ ports.CareerService = (*CareerService)(nil)
