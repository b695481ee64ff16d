package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/policy"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new non-admin account. The admin flag can only ever be
// granted later, by an existing admin, through UpdateUser.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Registering user", slog.String("email", input.Email))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Admin:        false,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("User registered", slog.String("email", input.Email))

	return user, nil
}

// GetUser returns one account; only the account itself or an admin may read it.
func (srv *userService) GetUser(ctx context.Context, requester *entity.User, email string) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.UserRepo().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		return policy.Authorize(requester, policy.Owner{Email: user.Email}, policy.ActionRead)
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns every account; admins only. Listing has no single owner,
// so the ownership rule cannot apply and the admin flag is checked directly.
func (srv *userService) ListUsers(ctx context.Context, requester *entity.User) ([]*entity.User, error) {
	if requester == nil || !requester.Admin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing accounts requires admin")
	}

	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		users, err = repoFactory.UserRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, err
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of input to an account. An email
// change reassigns the account's identity, so it is authorized twice: against
// the current email before any field is touched and against the resulting
// email after the changes are applied. Only an admin passes both sides.
func (srv *userService) UpdateUser(ctx context.Context, requester *entity.User, email string, input *usecase.UpdateUserInput) (*entity.User, error) {
	srv.log(ctx).Info("Updating user", slog.String("email", email))

	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// 1. Load the current state and authorize against it
		var err error
		user, err = userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: user.Email}, policy.ActionWrite); err != nil {
			return err
		}

		// 2. Apply the requested changes
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Password != nil {
			hash, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
			}
			user.PasswordHash = hash
		}
		if input.Admin != nil {
			// The admin flag is only an admin's to give or take.
			if !requester.Admin {
				return errors.Wrap(domainerrors.ErrForbidden, "admin flag requires admin")
			}
			user.Admin = *input.Admin
		}

		// 3. Authorize again against the resulting email
		if err := policy.Authorize(requester, policy.Owner{Email: user.Email}, policy.ActionWrite); err != nil {
			return err
		}

		if err := userRepo.Update(ctx, email, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("User update failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("User updated", slog.String("email", user.Email))

	return user, nil
}

// DeleteUser removes an account and all of its sessions atomically, so no
// orphaned token can keep resolving to a deleted account.
func (srv *userService) DeleteUser(ctx context.Context, requester *entity.User, email string) error {
	srv.log(ctx).Info("Deleting user", slog.String("email", email))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		sessionRepo := repoFactory.SessionRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: user.Email}, policy.ActionDelete); err != nil {
			return err
		}

		if err := sessionRepo.DeleteByOwner(ctx, user.Email); err != nil {
			return errors.Wrap(err, "failed to delete sessions")
		}

		if err := userRepo.Delete(ctx, user.Email); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("User deletion failed", slog.String("email", email), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("User deleted", slog.String("email", email))

	return nil
}
