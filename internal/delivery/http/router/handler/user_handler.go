// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userView is the public shape of an account; the credential record never
// leaves the server.
type userView struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input *usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := userView{Email: user.Email, Name: user.Name, Admin: user.Admin}

	return response.Success(c, http.StatusCreated, view, "User registered successfully")
}

// Me returns the account behind the presented session token.
func (h *UserHandler) Me(c echo.Context) error {
	requester := middleware.RequesterFrom(c)
	view := userView{Email: requester.Email, Name: requester.Name, Admin: requester.Admin}

	return response.Success(c, http.StatusOK, view, "Profile retrieved successfully")
}

// GetUser returns one account by email.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.uc.GetUser(c.Request().Context(), middleware.RequesterFrom(c), c.Param("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	view := userView{Email: user.Email, Name: user.Name, Admin: user.Admin}

	return response.Success(c, http.StatusOK, view, "User retrieved successfully")
}

// ListUsers returns all accounts; admins only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context(), middleware.RequesterFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, userView{Email: user.Email, Name: user.Name, Admin: user.Admin})
	}

	return response.Success(c, http.StatusOK, views, "Users retrieved successfully")
}

// UpdateUser applies partial changes to an account.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var input *usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), middleware.RequesterFrom(c), c.Param("email"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	view := userView{Email: user.Email, Name: user.Name, Admin: user.Admin}

	return response.Success(c, http.StatusOK, view, "User updated successfully")
}

// DeleteUser removes an account and all of its sessions.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), middleware.RequesterFrom(c), c.Param("email")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deleted"}, "User deleted successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
