package handler

import (
	"log/slog"
	"net/http"
	"time"

	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for login and session management handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// sessionView exposes a session without its token; the token is shown exactly
// once, in the login response.
type sessionView struct {
	ID         uuid.UUID  `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// Login handles the login request and returns a fresh session token.
func (h *SessionHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	body := map[string]any{
		"token": output.Token,
		"user": userView{
			Email: output.User.Email,
			Name:  output.User.Name,
			Admin: output.User.Admin,
		},
	}

	return response.Success(c, http.StatusOK, body, "Login successful")
}

// ListSessions returns the requester's active logins across devices.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	sessions, err := h.uc.ListSessions(c.Request().Context(), middleware.RequesterFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]sessionView, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, sessionView{
			ID:         session.ID,
			CreatedAt:  session.CreatedAt,
			LastUsedAt: session.LastUsedAt,
		})
	}

	return response.Success(c, http.StatusOK, views, "Sessions retrieved successfully")
}

// RevokeSession ends one of the requester's sessions.
func (h *SessionHandler) RevokeSession(c echo.Context) error {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid session id")
	}

	if err := h.uc.RevokeSession(c.Request().Context(), middleware.RequesterFrom(c), sessionID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Session revoked"}, "Session revoked successfully")
}

// RevokeAllSessions logs the requester out of every device.
func (h *SessionHandler) RevokeAllSessions(c echo.Context) error {
	if err := h.uc.RevokeAllSessions(c.Request().Context(), middleware.RequesterFrom(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "All sessions revoked"}, "All sessions revoked successfully")
}
