package handler

import (
	"log/slog"
	"net/http"

	"ordering/internal/delivery/http/response"
	"ordering/internal/domain/entity"
	"ordering/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler exposes the auth store to the UI layer.
type AuthHandler struct {
	store  usecase.AuthStore
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(store usecase.AuthStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:  store,
		logger: logger,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// State returns the current auth snapshot.
func (h *AuthHandler) State(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.store.Snapshot(), "")
}

// Login signs in with email and password.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.store.Login(c.Request().Context(), input.Email, input.Password); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.store.Snapshot(), "Login successful")
}

// Register creates an account and signs in to it.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.store.Register(c.Request().Context(), input.Email, input.Password, input.Name); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, h.store.Snapshot(), "Account created")
}

// Logout signs out and clears the saved session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.store.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.store.Snapshot(), "Logout successful")
}

// UpdateProfile replaces the editable profile fields.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var input entity.ProfileUpdate
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	profile, err := h.store.UpdateProfile(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// Abandon cancels the sign-in operation in flight, if any.
func (h *AuthHandler) Abandon(c echo.Context) error {
	h.store.Abandon()

	return response.Success(c, http.StatusOK, h.store.Snapshot(), "")
}
