// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core entity in the system, representing a unique account.
// The email address doubles as the account identifier: it is what login
// credentials, sessions and resource ownership all refer to.
type User struct {
	Email        string    // The account identifier; also the login name.
	Name         string    // The user's display name.
	PasswordHash string    // Self-describing encoded password record. Never serialized to clients.
	Admin        bool      // Admins bypass ownership checks everywhere.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
