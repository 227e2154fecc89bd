package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amoghdiagnostic/site-api/internal/api/metrics"
	"github.com/amoghdiagnostic/site-api/internal/core/domain"
	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// AuthHandler exposes registration, login and the password-reset flow.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /register: creates a user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	return h.register(c, domain.RoleUser, "User registered successfully")
}

// RegisterAdmin handles POST /admin/register: creates an admin account.
//
// @Summary      Register a new admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /admin/register [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	return h.register(c, domain.RoleAdmin, "Admin account created successfully")
}

func (h *AuthHandler) register(c echo.Context, role, message string) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, role)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	return c.JSON(http.StatusCreated, ok(message).withToken(token).withUser(toUserResponse(user)))
}

// Login handles POST /login: authenticates a user account.
//
// @Summary      Login as user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, domain.RoleUser, "User login successful")
}

// LoginAdmin handles POST /admin/login: authenticates an admin account.
//
// @Summary      Login as admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /admin/login [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin, "Admin login successful")
}

func (h *AuthHandler) login(c echo.Context, role, message string) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
	return c.JSON(http.StatusOK, ok(message).withToken(token).withUser(toUserResponse(user)))
}

// ForgotPassword handles POST /forgot-password: issues and mails an OTP.
//
// @Summary      Request a password-reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.Inc()
	return c.JSON(http.StatusOK, ok("OTP sent to your email"))
}

// VerifyOTP handles POST /verify-otp: checks a code without consuming it.
//
// @Summary      Verify a password-reset OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and OTP"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues(otpResultLabel(err)).Inc()
		return err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, ok("OTP verified"))
}

// ResetPassword handles POST /reset-password: re-verifies the OTP and
// swaps the password.
//
// @Summary      Reset password with an OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, OTP and new password"
// @Success      200   {object}  envelope
// @Failure      400   {object}  envelope
// @Router       /reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		return err
	}

	metrics.PasswordResetsTotal.Inc()
	return c.JSON(http.StatusOK, ok("Password reset successful"))
}

func otpResultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrOTPExpired):
		return "expired"
	case errors.Is(err, domain.ErrOTPInvalid):
		return "invalid"
	case errors.Is(err, domain.ErrOTPNotRequested):
		return "not_requested"
	default:
		return "error"
	}
}
