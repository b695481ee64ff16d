package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	mockRepo "bazar/internal/mocks/repository"
	mockSvc "bazar/internal/mocks/service"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   usecase.UserUsecase
	txManager *mockRepo.MockTransactionManager
	hasher    *mockSvc.MockPasswordHasher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return userServiceFixtures{
		service:   NewUserService(txManager, hasher, logger),
		txManager: txManager,
		hasher:    hasher,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "test@example.com",
		Name:     "Test User",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("encoded_record", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					assert.Equal(t, input.Email, user.Email)
					assert.Equal(t, "encoded_record", user.PasswordHash)
					assert.False(t, user.Admin, "registration must never grant admin")
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, input.Email, user.Email)
	assert.False(t, user.Admin)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "taken@example.com",
		Name:     "Test User",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("encoded_record", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Return(domainerrors.ErrUserAlreadyExists.WrapMessage("duplicate email"))

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrUserAlreadyExists, "failed to create user"))

	user, err := fx.service.Register(ctx, input)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_GetUser_Self(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "me@example.com", Name: "Me"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.GetUser(ctx, requester, requester.Email)

	require.NoError(t, err)
	assert.Equal(t, stored.Name, user.Name)
}

func TestUserService_GetUser_OtherAccountForbidden(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, stored.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	user, err := fx.service.GetUser(ctx, requester, stored.Email)

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUserService_GetUser_AdminMayReadAnyone(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	stored := &entity.User{Email: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, stored.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.GetUser(ctx, requester, stored.Email)

	require.NoError(t, err)
	assert.Equal(t, stored.Email, user.Email)
}

func TestUserService_ListUsers_RequiresAdmin(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}

	users, err := fx.service.ListUsers(ctx, requester)

	assert.Nil(t, users)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUserService_ListUsers_Admin(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	stored := []*entity.User{
		{Email: "a@example.com"},
		{Email: "b@example.com"},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().List(ctx).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	users, err := fx.service.ListUsers(ctx, requester)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_UpdateUser_SelfChangesNameAndPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "me@example.com", Name: "Old Name", PasswordHash: "old_record"}
	newName := "New Name"
	newPassword := "NewPassword123!"

	fx.hasher.EXPECT().Hash(newPassword).Return("new_record", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(stored, nil)
			mockUserRepo.EXPECT().
				Update(ctx, requester.Email, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, email string, user *entity.User) {
					assert.Equal(t, newName, user.Name)
					assert.Equal(t, "new_record", user.PasswordHash)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.UpdateUser(ctx, requester, requester.Email, &usecase.UpdateUserInput{
		Name:     &newName,
		Password: &newPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, newName, user.Name)
}

func TestUserService_UpdateUser_AdminFlagRequiresAdmin(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "me@example.com"}
	wantAdmin := true

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrForbidden, "admin flag requires admin"))

	user, err := fx.service.UpdateUser(ctx, requester, requester.Email, &usecase.UpdateUserInput{
		Admin: &wantAdmin,
	})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUserService_UpdateUser_EmailChangeRequiresAdmin(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "me@example.com"}
	newEmail := "fresh@example.com"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	user, err := fx.service.UpdateUser(ctx, requester, requester.Email, &usecase.UpdateUserInput{
		Email: &newEmail,
	})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUserService_UpdateUser_AdminMayChangeEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	stored := &entity.User{Email: "old@example.com"}
	newEmail := "fresh@example.com"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, "old@example.com").Return(stored, nil)
			mockUserRepo.EXPECT().
				Update(ctx, "old@example.com", mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, email string, user *entity.User) {
					assert.Equal(t, newEmail, user.Email)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	user, err := fx.service.UpdateUser(ctx, requester, "old@example.com", &usecase.UpdateUserInput{
		Email: &newEmail,
	})

	require.NoError(t, err)
	assert.Equal(t, newEmail, user.Email)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().
				FindByEmail(ctx, "ghost@example.com").
				Return(nil, repository.ErrUserNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrNotFound, "user not found"))

	name := "Ghost"
	user, err := fx.service.UpdateUser(ctx, requester, "ghost@example.com", &usecase.UpdateUserInput{Name: &name})

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestUserService_DeleteUser_RemovesSessionsToo(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "me@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockSessionRepo := mockRepo.NewMockSessionRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().SessionRepo().Return(mockSessionRepo)

			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(stored, nil)
			mockSessionRepo.EXPECT().DeleteByOwner(ctx, requester.Email).Return(nil)
			mockUserRepo.EXPECT().Delete(ctx, requester.Email).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.DeleteUser(ctx, requester, requester.Email)

	require.NoError(t, err)
}

func TestUserService_DeleteUser_OtherAccountForbidden(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.User{Email: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockSessionRepo := mockRepo.NewMockSessionRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().SessionRepo().Return(mockSessionRepo)

			mockUserRepo.EXPECT().FindByEmail(ctx, stored.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	err := fx.service.DeleteUser(ctx, requester, stored.Email)

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
