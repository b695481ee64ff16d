package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserInput carries optional field changes; nil fields stay untouched.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Admin    *bool   `json:"admin"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new non-admin account. Open to anyone.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// GetUser returns one account; only the account itself or an admin may read it.
	GetUser(ctx context.Context, requester *entity.User, email string) (*entity.User, error)

	// ListUsers returns every account; admins only.
	ListUsers(ctx context.Context, requester *entity.User) ([]*entity.User, error)

	// UpdateUser applies the non-nil fields of input to an account.
	// Only the account itself or an admin may write, and only an admin may
	// change the admin flag.
	UpdateUser(ctx context.Context, requester *entity.User, email string, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes an account and all of its sessions atomically.
	DeleteUser(ctx context.Context, requester *entity.User, email string) error
}
