package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/api/middleware"
	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// UserHandler exposes profile and admin account management.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me handles GET /me: returns the authenticated user's profile.
//
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return c.JSON(http.StatusOK, ok("OK").withData(toUserResponse(user)))
}

// UpdateProfile handles PUT /update-profile: multipart form with name,
// email, optional password and optional profileImage file.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name          formData  string  true   "Name"
// @Param        email         formData  string  true   "Email"
// @Param        password      formData  string  false  "New password"
// @Param        profileImage  formData  file    false  "Profile image"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /update-profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	in := ports.UpdateProfileInput{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}
	if file, err := c.FormFile("profileImage"); err == nil {
		in.ProfileImage = file
	}

	updated, err := h.userService.UpdateProfile(c.Request().Context(), user.ID, in)
	if err != nil {
		return err
	}

	if in.ProfileImage != nil {
		metrics.UploadsTotal.WithLabelValues("profile").Inc()
	}
	return c.JSON(http.StatusOK, ok("Profile updated successfully").withData(toUserResponse(updated)))
}

// UploadPhoto handles PUT /upload-photo: replaces only the profile image.
//
// @Summary      Upload profile photo
// @Tags         users
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        profileImage  formData  file  true  "Profile image"
// @Success      200  {object}  envelope
// @Failure      400  {object}  envelope
// @Router       /upload-photo [put]
func (h *UserHandler) UploadPhoto(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	file, err := c.FormFile("profileImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "please upload a file")
	}

	url, err := h.userService.UploadPhoto(c.Request().Context(), user.ID, file)
	if err != nil {
		return err
	}

	metrics.UploadsTotal.WithLabelValues("profile").Inc()
	return c.JSON(http.StatusOK, ok("Photo uploaded successfully").withData(url))
}

// List handles GET /users: admin only.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withCount(len(users)).withData(toUserResponses(users)))
}

// Get handles GET /users/:id: admin only.
//
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("OK").withData(toUserResponse(user)))
}

// ToggleStatus handles PUT /users/:id/toggle-status: admin only.
//
// @Summary      Toggle a user's active status
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id}/toggle-status [put]
func (h *UserHandler) ToggleStatus(c echo.Context) error {
	user, err := h.userService.ToggleStatus(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	msg := "User deactivated successfully"
	if user.IsActive {
		msg = "User activated successfully"
	}
	return c.JSON(http.StatusOK, ok(msg).withData(toUserResponse(user)))
}

// Delete handles DELETE /users/:id: admin only, self-delete rejected.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	if err := h.userService.Delete(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok("User deleted successfully"))
}
