package usecase

import (
	"context"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the issued bearer token after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// SessionUsecase defines the interface for session management operations.
type SessionUsecase interface {
	// Login verifies credentials and issues a fresh session token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ListSessions returns the requester's sessions, ordered by creation time.
	ListSessions(ctx context.Context, requester *entity.User) ([]*entity.Session, error)

	// RevokeSession ends one of the requester's sessions. Revoking a session
	// that is already gone is a no-op.
	RevokeSession(ctx context.Context, requester *entity.User, sessionID uuid.UUID) error

	// RevokeAllSessions ends every session of the requester, including the
	// one making this call.
	RevokeAllSessions(ctx context.Context, requester *entity.User) error
}
