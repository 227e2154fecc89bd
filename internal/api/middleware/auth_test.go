package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
	"github.com/amoghdiagnostic/site-api/internal/core/service"
)

// stubUsers serves a single user by id. The embedded interface panics on
// anything the middleware should never call.
type stubUsers struct {
	ports.UserRepository
	user *domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		clone := *s.user
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func authRequest(t *testing.T, tokens ports.TokenIssuer, users ports.UserRepository, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(tokens, users)(func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			t.Fatal("no identity attached to context")
		}
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	user := &domain.User{ID: "user_1", Email: "jane@example.com", Role: domain.RoleUser, IsActive: true}

	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	rec, err := authRequest(t, tokens, &stubUsers{user: user}, "Bearer "+token)
	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	_, err := authRequest(t, tokens, &stubUsers{}, "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	_, err := authRequest(t, tokens, &stubUsers{}, "Token abc123")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_BadToken(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	_, err := authRequest(t, tokens, &stubUsers{}, "Bearer not-a-token")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_DeletedAccount(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	token, err := tokens.Issue("user_gone")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Token is valid but the account it references no longer exists.
	_, err = authRequest(t, tokens, &stubUsers{}, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_DeactivatedAccount(t *testing.T) {
	tokens := service.NewJWTIssuer("secret", time.Hour)
	user := &domain.User{ID: "user_1", Email: "jane@example.com", Role: domain.RoleUser, IsActive: false}

	token, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = authRequest(t, tokens, &stubUsers{user: user}, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}
