package impl

import (
	"context"
	"log/slog"

	"bazar/config"
	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager         repository.TransactionManager
	hasher            service.PasswordHasher
	tokenSvc          service.TokenService
	logger            *slog.Logger
	maxActiveSessions int
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.SessionUsecase {
	maxActiveSessions := 0
	if cfg != nil && cfg.Auth != nil {
		maxActiveSessions = cfg.Auth.MaxActiveSessions
	}

	return &sessionService{
		txManager:         txManager,
		hasher:            hasher,
		tokenSvc:          tokenSvc,
		logger:            logger,
		maxActiveSessions: maxActiveSessions,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials and issues a fresh session token.
// Unknown account and wrong password collapse into one rejection so the
// response cannot be used to probe which emails are registered.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Processing login", slog.String("email", input.Email))

	var output *usecase.LoginOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		// 1. Load the account
		user, err := userRepo.FindByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 2. Verify the password against the stored record
		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
		}

		// 3. Enforce the session cap by retiring the oldest logins first.
		// A cap of 1 makes every login replace the previous one.
		if srv.maxActiveSessions > 0 {
			if err := srv.retireOldestSessions(ctx, sessionRepo, user.Email); err != nil {
				return err
			}
		}

		// 4. Issue a fresh token; entropy failure aborts the login outright
		token, err := srv.tokenSvc.GenerateToken()
		if err != nil {
			return errors.Wrap(err, "failed to generate session token")
		}

		session := &entity.Session{
			OwnerEmail: user.Email,
			Token:      token,
		}
		if err := sessionRepo.Create(ctx, session); err != nil {
			return errors.Wrap(err, "failed to create session")
		}

		output = &usecase.LoginOutput{
			Token: token,
			User:  user,
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Login succeeded", slog.String("email", input.Email))

	return output, nil
}

// retireOldestSessions deletes just enough of the oldest sessions to leave
// room for one more under the configured cap.
func (srv *sessionService) retireOldestSessions(ctx context.Context, sessionRepo repository.SessionRepository, ownerEmail string) error {
	count, err := sessionRepo.CountByOwner(ctx, ownerEmail)
	if err != nil {
		return errors.Wrap(err, "failed to count sessions")
	}

	excess := count - srv.maxActiveSessions + 1
	if excess <= 0 {
		return nil
	}

	sessions, err := sessionRepo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return errors.Wrap(err, "failed to list sessions")
	}
	if excess > len(sessions) {
		excess = len(sessions)
	}

	// FindByOwner returns oldest first.
	for _, session := range sessions[:excess] {
		if err := sessionRepo.Delete(ctx, ownerEmail, session.ID); err != nil {
			return errors.Wrap(err, "failed to retire session")
		}
	}
	srv.log(ctx).Info("Retired oldest sessions to honor cap",
		slog.String("email", ownerEmail),
		slog.Int("retired", excess),
	)

	return nil
}

// ListSessions returns the requester's sessions, ordered by creation time.
func (srv *sessionService) ListSessions(ctx context.Context, requester *entity.User) ([]*entity.Session, error) {
	var sessions []*entity.Session

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		sessions, err = repoFactory.SessionRepo().FindByOwner(ctx, requester.Email)
		if err != nil {
			return errors.Wrap(err, "failed to find sessions")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list sessions", slog.Any("error", err), slog.String("email", requester.Email))

		return nil, err
	}

	return sessions, nil
}

// RevokeSession ends one of the requester's sessions.
// The deletion is scoped to the requester, so a foreign session id simply
// affects nothing; revoking an already-revoked session is equally a no-op.
func (srv *sessionService) RevokeSession(ctx context.Context, requester *entity.User, sessionID uuid.UUID) error {
	srv.log(ctx).Info("Revoking session", slog.String("email", requester.Email), slog.Any("session_id", sessionID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.SessionRepo().Delete(ctx, requester.Email, sessionID); err != nil {
			return errors.Wrap(err, "failed to delete session")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to revoke session", slog.Any("error", err), slog.String("email", requester.Email))

		return err
	}

	return nil
}

// RevokeAllSessions ends every session of the requester.
func (srv *sessionService) RevokeAllSessions(ctx context.Context, requester *entity.User) error {
	srv.log(ctx).Info("Revoking all sessions", slog.String("email", requester.Email))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.SessionRepo().DeleteByOwner(ctx, requester.Email); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err), slog.String("email", requester.Email))

		return err
	}

	return nil
}
