package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

type userFixture struct {
	svc     *UserService
	repo    *memUserRepo
	storage *stubStorage
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	repo := newMemUserRepo()
	storage := &stubStorage{}
	svc := NewUserService(repo, NewBcryptHasher(bcrypt.MinCost), storage, zerolog.Nop())
	return &userFixture{svc: svc, repo: repo, storage: storage}
}

func (f *userFixture) seed(t *testing.T, name, email, role string) *domain.User {
	t.Helper()
	user, err := f.repo.Create(context.Background(), &domain.User{
		Name:     name,
		Email:    email,
		Role:     role,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return user
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)

	updated, err := f.svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{
		Name:  "Jane Doe",
		Email: "Jane.Doe@Example.com",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != "Jane Doe" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.Email != "jane.doe@example.com" {
		t.Fatalf("expected normalized email, got %s", updated.Email)
	}
}

func TestUserService_UpdateProfileEmailTaken(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)
	f.seed(t, "John", "john@example.com", domain.RoleUser)

	_, err := f.svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{
		Name:  "Jane",
		Email: "john@example.com",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_UpdateProfileRequiresNameAndEmail(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)

	_, err := f.svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Name: "  "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	_ = user
}

func TestUserService_UploadPhotoReplacesOld(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)
	ctx := context.Background()
	file := &multipart.FileHeader{Filename: "avatar.png"}

	first, err := f.svc.UploadPhoto(ctx, user.ID, file)
	if err != nil {
		t.Fatalf("UploadPhoto returned error: %v", err)
	}
	if len(f.storage.deleted) != 0 {
		t.Fatal("delete issued on first upload")
	}

	second, err := f.svc.UploadPhoto(ctx, user.ID, file)
	if err != nil {
		t.Fatalf("second UploadPhoto returned error: %v", err)
	}
	if second == first {
		t.Fatal("expected a new object URL")
	}
	if len(f.storage.deleted) != 1 || f.storage.deleted[0] != first {
		t.Fatalf("old image not deleted: %v", f.storage.deleted)
	}

	stored, err := f.repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if stored.ProfileImage != second {
		t.Fatalf("profile image not persisted: %s", stored.ProfileImage)
	}
}

func TestUserService_UploadPhotoStorageFailure(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)
	f.storage.failUpload = true

	_, err := f.svc.UploadPhoto(context.Background(), user.ID, &multipart.FileHeader{Filename: "avatar.png"})
	if !errors.Is(err, domain.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
}

func TestUserService_ToggleStatus(t *testing.T) {
	f := newUserFixture(t)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)
	ctx := context.Background()

	toggled, err := f.svc.ToggleStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("ToggleStatus returned error: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected account to be deactivated")
	}

	toggled, err = f.svc.ToggleStatus(ctx, user.ID)
	if err != nil {
		t.Fatalf("second ToggleStatus returned error: %v", err)
	}
	if !toggled.IsActive {
		t.Fatal("expected account to be reactivated")
	}
}

func TestUserService_DeleteSelfForbidden(t *testing.T) {
	f := newUserFixture(t)
	admin := f.seed(t, "Admin", "admin@example.com", domain.RoleAdmin)
	ctx := context.Background()

	if err := f.svc.Delete(ctx, admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if _, err := f.repo.FindByID(ctx, admin.ID); err != nil {
		t.Fatalf("account removed despite self-delete guard: %v", err)
	}
}

func TestUserService_DeleteOther(t *testing.T) {
	f := newUserFixture(t)
	admin := f.seed(t, "Admin", "admin@example.com", domain.RoleAdmin)
	user := f.seed(t, "Jane", "jane@example.com", domain.RoleUser)
	ctx := context.Background()

	if err := f.svc.Delete(ctx, admin.ID, user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.repo.FindByID(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("account still present: %v", err)
	}
}

func TestUserService_DeleteMissing(t *testing.T) {
	f := newUserFixture(t)
	admin := f.seed(t, "Admin", "admin@example.com", domain.RoleAdmin)

	err := f.svc.Delete(context.Background(), admin.ID, "user_999")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
