// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// IdentityUsecase turns a bearer token into the current user.
// This is the only way request handling learns who is calling.
type IdentityUsecase interface {
	// Resolve maps a bearer token to the account that owns it.
	// A nil or empty token means no credential was presented at all;
	// a non-empty token that matches no live session is invalid. The two
	// cases are distinct errors internally even though clients see one
	// uniform rejection.
	//
	// On success the user is re-read from storage, never from a cache, so
	// revocations and role changes take effect on the very next request.
	// Resolving also stamps the session's last-used time.
	Resolve(ctx context.Context, token *string) (*entity.User, error)
}
