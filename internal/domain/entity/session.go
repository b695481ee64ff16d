package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session represents a single authenticated login. The token is an opaque
// random value handed to the client as a bearer credential; it carries no
// claims and is resolved against storage on every request, so revoking the
// row is immediately effective.
type Session struct {
	ID         uuid.UUID  // The unique ID for this session record; used to revoke a single device.
	OwnerEmail string     // The account this session belongs to.
	Token      string     // 128-character alphanumeric bearer token, unique across all sessions.
	CreatedAt  time.Time  // When the user logged in.
	LastUsedAt *time.Time // Stamped on every successful resolve; nil until first use.
}
