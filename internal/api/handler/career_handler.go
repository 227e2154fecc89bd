package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// CareerHandler exposes the public application form and the admin review
// endpoints for career applications.
type CareerHandler struct {
	careerService ports.CareerService
}

func NewCareerHandler(careerService ports.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

// Apply handles POST /careers: public, multipart with a required resume.
//
// @Summary      Submit a job application
// @Tags         careers
// @Accept       mpfd
// @Produce      json
// @Param        name         formData  string  true   "Name"
// @Param        email        formData  string  true   "Email"
// @Param        coverLetter  formData  string  false  "Cover letter"
// @Param        resume       formData  file    true   "Resume"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /careers [post]
func (h *CareerHandler) Apply(c echo.Context) error {
	in := ports.CareerInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		CoverLetter: c.FormValue("coverLetter"),
	}
	if file, err := c.FormFile("resume"); err == nil {
		in.Resume = file
	}

	app, err := h.careerService.Apply(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("resume").Inc()
	return c.JSON(http.StatusCreated, ok("Application submitted successfully").withData(app))
}

// List handles GET /careers: admin only.
//
// @Summary      List job applications
// @Tags         careers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Router       /careers [get]
func (h *CareerHandler) List(c echo.Context) error {
	apps, err := h.careerService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withCount(len(apps)).withData(apps))
}

// Get handles GET /careers/:id: admin only.
//
// @Summary      Get a job application
// @Tags         careers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /careers/{id} [get]
func (h *CareerHandler) Get(c echo.Context) error {
	app, err := h.careerService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withData(app))
}

// Delete handles DELETE /careers/:id: admin only.
//
// @Summary      Delete a job application
// @Tags         careers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /careers/{id} [delete]
func (h *CareerHandler) Delete(c echo.Context) error {
	if err := h.careerService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Application deleted successfully"))
}
