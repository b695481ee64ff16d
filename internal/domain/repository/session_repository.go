package repository

import (
	"context"
	"time"

	"bazar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository defines the interface for bearer session persistence.
// This supports multi-device login and remote logout functionality.
type SessionRepository interface {
	// Create persists a new session. The token column carries a unique
	// constraint; a collision must surface as an error, never an overwrite.
	Create(ctx context.Context, session *entity.Session) error

	// FindByToken retrieves a session by exact token match.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// FindByOwner retrieves all sessions for an account, ordered by creation time.
	// This allows users to see all their active logins across devices.
	FindByOwner(ctx context.Context, ownerEmail string) ([]*entity.Session, error)

	// Touch stamps the session's last-used time.
	Touch(ctx context.Context, id uuid.UUID, usedAt time.Time) error

	// Delete removes one session scoped to its owner, ending that login.
	// Deleting a session that does not exist (or belongs to someone else)
	// is a no-op.
	Delete(ctx context.Context, ownerEmail string, id uuid.UUID) error

	// DeleteByOwner removes all sessions for an account.
	// This backs "logout from all devices".
	DeleteByOwner(ctx context.Context, ownerEmail string) error

	// CountByOwner returns the number of sessions for an account.
	// Used to enforce the configured session cap.
	CountByOwner(ctx context.Context, ownerEmail string) (int, error)
}
