package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// EventHandler exposes CRUD for site events. Writes are admin-gated by the
// router; media arrives as multipart "images" and "videos" fields.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        eventTitle   formData  string  true   "Title"
// @Param        eventDate    formData  string  true   "Date"
// @Param        time         formData  string  false  "Time"
// @Param        description  formData  string  false  "Description"
// @Success      201  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	in := eventInput(c)
	event, err := h.eventService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("event").Add(float64(len(in.Images) + len(in.Videos)))
	return c.JSON(http.StatusCreated, ok("Event created successfully").withData(event))
}

// List handles GET /events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withCount(len(events)).withData(events))
}

// Get handles GET /events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.eventService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withData(event))
}

// Update handles PUT /events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	in := eventInput(c)
	event, err := h.eventService.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("event").Add(float64(len(in.Images) + len(in.Videos)))
	return c.JSON(http.StatusOK, ok("Event updated successfully").withData(event))
}

// Delete handles DELETE /events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("Event deleted successfully"))
}

func eventInput(c echo.Context) ports.EventInput {
	in := ports.EventInput{
		Title:       c.FormValue("eventTitle"),
		Date:        c.FormValue("eventDate"),
		Time:        c.FormValue("time"),
		Description: c.FormValue("description"),
	}
	in.Images = formFiles(c, "images")
	in.Videos = formFiles(c, "videos")
	return in
}

// formFiles returns the uploaded files for a multipart field, or nil when
// the request has no multipart body at all.
func formFiles(c echo.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
