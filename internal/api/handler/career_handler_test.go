package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

type stubCareerService struct {
	applyFn func(ctx context.Context, in ports.CareerInput) (*domain.CareerApplication, error)
}

func (s *stubCareerService) Apply(ctx context.Context, in ports.CareerInput) (*domain.CareerApplication, error) {
	return s.applyFn(ctx, in)
}

func (s *stubCareerService) GetByID(context.Context, string) (*domain.CareerApplication, error) {
	panic("not used")
}

func (s *stubCareerService) List(context.Context) ([]*domain.CareerApplication, error) {
	panic("not used")
}

func (s *stubCareerService) Delete(context.Context, string) error {
	panic("not used")
}

func applicationForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("name", "Jane"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := w.WriteField("email", "jane@example.com"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := w.CreateFormFile("resume", "resume.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("%PDF-1.4")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestCareerHandler_Apply(t *testing.T) {
	stub := &stubCareerService{
		applyFn: func(_ context.Context, in ports.CareerInput) (*domain.CareerApplication, error) {
			if in.Name != "Jane" || in.Email != "jane@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Resume == nil || in.Resume.Filename != "resume.pdf" {
				t.Fatalf("resume file not forwarded: %+v", in.Resume)
			}
			return &domain.CareerApplication{ID: "app_1", Name: in.Name, Email: in.Email}, nil
		},
	}
	handler := NewCareerHandler(stub)

	uploadsBefore := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("resume"))

	body, contentType := applicationForm(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/careers", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	uploadsAfter := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("resume"))
	if uploadsAfter != uploadsBefore+1 {
		t.Fatalf("expected upload counter to increment, got %v -> %v", uploadsBefore, uploadsAfter)
	}
}

func TestCareerHandler_ApplyValidationPropagates(t *testing.T) {
	stub := &stubCareerService{
		applyFn: func(context.Context, ports.CareerInput) (*domain.CareerApplication, error) {
			return nil, domain.ErrValidation
		},
	}
	handler := NewCareerHandler(stub)

	uploadsBefore := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("resume"))

	body, contentType := applicationForm(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/careers", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Apply(c); err != domain.ErrValidation {
		t.Fatalf("expected ErrValidation to propagate, got %v", err)
	}

	uploadsAfter := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("resume"))
	if uploadsAfter != uploadsBefore {
		t.Fatalf("upload counter moved on a failed application: %v -> %v", uploadsBefore, uploadsAfter)
	}
}
