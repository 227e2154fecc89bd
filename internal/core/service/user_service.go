package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

const profileImageFolder = "profileImages"

// UserService covers profile management and admin account operations.
type UserService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	storage ports.FileStorage
	log     zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, storage ports.FileStorage, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, storage: storage, log: log}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.FindAll(ctx)
}

// UpdateProfile changes name/email, optionally the password, and optionally
// replaces the profile image. A superseded image is deleted best-effort.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(in.Email)
	if email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email

	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if in.ProfileImage != nil {
		url, err := s.replaceProfileImage(ctx, user, in.ProfileImage)
		if err != nil {
			return nil, err
		}
		user.ProfileImage = url
	}

	return s.repo.Update(ctx, user)
}

// UploadPhoto replaces only the profile image and returns its URL.
func (s *UserService) UploadPhoto(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", domain.ErrValidation
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := s.replaceProfileImage(ctx, user, file)
	if err != nil {
		return "", err
	}
	user.ProfileImage = url

	if _, err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}

func (s *UserService) replaceProfileImage(ctx context.Context, user *domain.User, file *multipart.FileHeader) (string, error) {
	if user.ProfileImage != "" {
		if err := s.storage.Delete(ctx, user.ProfileImage); err != nil {
			// Orphaned objects are cheaper than failed profile updates.
			s.log.Warn().Err(err).Str("url", user.ProfileImage).Msg("failed to delete old profile image")
		}
	}
	url, err := s.storage.Upload(ctx, file, profileImageFolder)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return url, nil
}

// ToggleStatus flips the account's active flag. Deactivation takes effect on
// the next authenticated request since tokens are stateless.
func (s *UserService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	return s.repo.Update(ctx, user)
}

// Delete removes an account. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

var _ ports.UserService = (*UserService)(nil)
