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

// shopServiceFixtures holds all test dependencies for shop service tests.
type shopServiceFixtures struct {
	service   usecase.ShopUsecase
	txManager *mockRepo.MockTransactionManager
	qrService *mockSvc.MockQRCodeService
}

func createTestShopService(t *testing.T) shopServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	qrService := mockSvc.NewMockQRCodeService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return shopServiceFixtures{
		service:   NewShopService(txManager, qrService, logger),
		txManager: txManager,
		qrService: qrService,
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "bare hex", input: "ff0000", want: "ff0000"},
		{name: "leading hash stripped", input: "#ff0000", want: "ff0000"},
		{name: "short form", input: "#abc", want: "abc"},
		{name: "uppercase", input: "FFAA00", want: "FFAA00"},
		{name: "too long", input: "ff00001", wantErr: true},
		{name: "not hex", input: "red", wantErr: true},
		{name: "hash only strips to empty", input: "#", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeColor(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShopService_CreateShop_OwnerDefaultsToRequester(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	input := &usecase.CreateShopInput{
		Slug:  "my-shop",
		Name:  "My Shop",
		Color: "#00ff00",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Shop")).
				Run(func(ctx context.Context, shop *entity.Shop) {
					assert.Equal(t, requester.Email, shop.OwnerEmail)
					assert.Equal(t, "00ff00", shop.Color, "stored color drops the leading '#'")
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	shop, err := fx.service.CreateShop(ctx, requester, input)

	require.NoError(t, err)
	assert.Equal(t, requester.Email, shop.OwnerEmail)
}

func TestShopService_CreateShop_ForOtherOwnerRequiresAdmin(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	input := &usecase.CreateShopInput{
		Slug:  "their-shop",
		Name:  "Their Shop",
		Owner: "other@example.com",
	}

	shop, err := fx.service.CreateShop(ctx, requester, input)

	assert.Nil(t, shop)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestShopService_CreateShop_AdminMaySetAnyOwner(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	input := &usecase.CreateShopInput{
		Slug:  "their-shop",
		Name:  "Their Shop",
		Owner: "other@example.com",
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Shop")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	shop, err := fx.service.CreateShop(ctx, requester, input)

	require.NoError(t, err)
	assert.Equal(t, "other@example.com", shop.OwnerEmail)
}

func TestShopService_CreateShop_BadColor(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	input := &usecase.CreateShopInput{
		Slug:  "my-shop",
		Name:  "My Shop",
		Color: "notacolor",
	}

	shop, err := fx.service.CreateShop(ctx, requester, input)

	assert.Nil(t, shop)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestShopService_GetShop_NotFound(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, "ghost").Return(nil, repository.ErrShopNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrNotFound, "shop not found"))

	shop, err := fx.service.GetShop(ctx, "ghost")

	assert.Nil(t, shop)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestShopService_ListShopsByOwner_StrangerForbidden(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}

	shops, err := fx.service.ListShopsByOwner(ctx, requester, "other@example.com")

	assert.Nil(t, shops)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

// Handing a shop to another account is an act on that account's behalf; a
// plain owner can change everything about their shop except who owns it.
func TestShopService_UpdateShop_TransferToStrangerForbidden(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.Shop{Slug: "my-shop", Name: "My Shop", OwnerEmail: requester.Email}
	newOwner := "other@example.com"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	shop, err := fx.service.UpdateShop(ctx, requester, stored.Slug, &usecase.UpdateShopInput{
		Owner: &newOwner,
	})

	assert.Nil(t, shop)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestShopService_UpdateShop_AdminMayTransfer(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	stored := &entity.Shop{Slug: "my-shop", Name: "My Shop", OwnerEmail: "me@example.com"}
	newOwner := "other@example.com"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Shop")).
				Run(func(ctx context.Context, slug string, shop *entity.Shop) {
					assert.Equal(t, newOwner, shop.OwnerEmail)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	shop, err := fx.service.UpdateShop(ctx, requester, stored.Slug, &usecase.UpdateShopInput{
		Owner: &newOwner,
	})

	require.NoError(t, err)
	assert.Equal(t, newOwner, shop.OwnerEmail)
}

func TestShopService_UpdateShop_OwnerEditsFields(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.Shop{Slug: "my-shop", Name: "My Shop", OwnerEmail: requester.Email}
	newName := "Renamed Shop"
	newColor := "#123abc"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Shop")).
				Run(func(ctx context.Context, slug string, shop *entity.Shop) {
					assert.Equal(t, newName, shop.Name)
					assert.Equal(t, "123abc", shop.Color)
					assert.Equal(t, requester.Email, shop.OwnerEmail)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	shop, err := fx.service.UpdateShop(ctx, requester, stored.Slug, &usecase.UpdateShopInput{
		Name:  &newName,
		Color: &newColor,
	})

	require.NoError(t, err)
	assert.Equal(t, newName, shop.Name)
}

func TestShopService_DeleteShop_StrangerForbidden(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	stored := &entity.Shop{Slug: "their-shop", OwnerEmail: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	err := fx.service.DeleteShop(ctx, requester, stored.Slug)

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestShopService_ShopQR_Success(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()
	stored := &entity.Shop{Slug: "my-shop", OwnerEmail: "me@example.com"}
	png := []byte{0x89, 0x50, 0x4E, 0x47}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)
	fx.qrService.EXPECT().GenerateShopQR(stored.Slug).Return(png, nil)

	got, err := fx.service.ShopQR(ctx, stored.Slug)

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestShopService_ShopQR_ShopMissing(t *testing.T) {
	fx := createTestShopService(t)

	ctx := context.Background()

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, "ghost").Return(nil, repository.ErrShopNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrNotFound, "shop not found"))

	got, err := fx.service.ShopQR(ctx, "ghost")

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
