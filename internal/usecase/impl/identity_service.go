// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.IdentityUsecase {
	return &identityService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve maps a bearer token to the account that owns it.
// The session lookup, the last-used stamp and the fresh user read happen in
// one transaction so a concurrent revocation settles to a clean yes or no.
func (srv *identityService) Resolve(ctx context.Context, token *string) (*entity.User, error) {
	if token == nil || *token == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingCredential, "no bearer token presented")
	}

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sessionRepo := repoFactory.SessionRepo()
		userRepo := repoFactory.UserRepo()

		// 1. Exact token match against live sessions
		session, err := sessionRepo.FindByToken(ctx, *token)
		if err != nil {
			if errors.Is(err, repository.ErrSessionNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidSession, "token matches no session")
			}

			return errors.Wrap(err, "failed to find session")
		}

		// 2. Stamp usage in the same transaction as the lookup
		if err := sessionRepo.Touch(ctx, session.ID, time.Now()); err != nil {
			return errors.Wrap(err, "failed to touch session")
		}

		// 3. Re-read the account from storage so role changes are already visible
		user, err = userRepo.FindByEmail(ctx, session.OwnerEmail)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				// Session outlived its account; treat like any dead token.
				return errors.Wrap(domainerrors.ErrInvalidSession, "session owner no longer exists")
			}

			return errors.Wrap(err, "failed to find session owner")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Debug("Identity resolution failed", slog.Any("error", err))

		return nil, err
	}

	return user, nil
}
