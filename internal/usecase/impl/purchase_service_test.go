package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/repository"
	mockRepo "bazar/internal/mocks/repository"
	"bazar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// purchaseServiceFixtures holds all test dependencies for purchase service tests.
type purchaseServiceFixtures struct {
	service   usecase.PurchaseUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestPurchaseService(t *testing.T) purchaseServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return purchaseServiceFixtures{
		service:   NewPurchaseService(txManager, logger),
		txManager: txManager,
	}
}

func TestPurchaseService_CreatePurchase_Success(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "buyer@example.com"}
	stored := &entity.Product{
		Slug:       "widget",
		ShopSlug:   "my-shop",
		PriceCents: 1500,
		Available:  10,
		Sold:       3,
	}
	input := &usecase.CreatePurchaseInput{
		ProductSlug: stored.Slug,
		Amount:      4,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockProductRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, slug string, product *entity.Product) {
					assert.Equal(t, 6, product.Available, "stock must shrink by the bought amount")
					assert.Equal(t, 7, product.Sold, "sold counter must grow by the bought amount")
				}).
				Return(nil)
			mockPurchaseRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Purchase")).
				Run(func(ctx context.Context, purchase *entity.Purchase) {
					require.NotNil(t, purchase.ProductSlug)
					require.NotNil(t, purchase.PurchaserEmail)
					assert.Equal(t, stored.Slug, *purchase.ProductSlug)
					assert.Equal(t, requester.Email, *purchase.PurchaserEmail)
					assert.Equal(t, int64(1500), purchase.PaidCents, "the unit price of the moment is recorded")
					assert.WithinDuration(t, time.Now(), purchase.Time, time.Minute)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchase, err := fx.service.CreatePurchase(ctx, requester, input)

	require.NoError(t, err)
	require.NotNil(t, purchase)
	assert.Equal(t, int64(1500), purchase.PaidCents)
}

func TestPurchaseService_CreatePurchase_NotEnoughStock(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "buyer@example.com"}
	stored := &entity.Product{
		Slug:      "widget",
		Available: 2,
	}
	input := &usecase.CreatePurchaseInput{
		ProductSlug: stored.Slug,
		Amount:      3,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrProductUnavailable, "not enough stock"))

	purchase, err := fx.service.CreatePurchase(ctx, requester, input)

	assert.Nil(t, purchase)
	assert.True(t, errors.Is(err, domainerrors.ErrProductUnavailable))
}

// Buying the exact remaining stock is allowed and leaves zero units.
func TestPurchaseService_CreatePurchase_TakesLastUnits(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "buyer@example.com"}
	stored := &entity.Product{
		Slug:       "widget",
		PriceCents: 100,
		Available:  2,
	}
	input := &usecase.CreatePurchaseInput{
		ProductSlug: stored.Slug,
		Amount:      2,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockProductRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, slug string, product *entity.Product) {
					assert.Zero(t, product.Available)
				}).
				Return(nil)
			mockPurchaseRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Purchase")).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchase, err := fx.service.CreatePurchase(ctx, requester, input)

	require.NoError(t, err)
	assert.Equal(t, int64(100), purchase.PaidCents)
}

func TestPurchaseService_CreatePurchase_ProductMissing(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "buyer@example.com"}
	input := &usecase.CreatePurchaseInput{
		ProductSlug: "ghost",
		Amount:      1,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindBySlug(ctx, "ghost").Return(nil, repository.ErrProductNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrNotFound, "product not found"))

	purchase, err := fx.service.CreatePurchase(ctx, requester, input)

	assert.Nil(t, purchase)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPurchaseService_ListPurchases_RequiresAdmin(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}

	purchases, err := fx.service.ListPurchases(ctx, requester)

	assert.Nil(t, purchases)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestPurchaseService_ListPurchases_Admin(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	stored := []*entity.Purchase{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)
			mockPurchaseRepo.EXPECT().List(ctx).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchases, err := fx.service.ListPurchases(ctx, requester)

	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestPurchaseService_ListPurchasesByPurchaser_Self(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "buyer@example.com"}
	stored := []*entity.Purchase{
		{ID: uuid.New(), PurchaserEmail: &requester.Email},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockUserRepo.EXPECT().FindByEmail(ctx, requester.Email).Return(requester, nil)
			mockPurchaseRepo.EXPECT().ListByPurchaser(ctx, requester.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchases, err := fx.service.ListPurchasesByPurchaser(ctx, requester, requester.Email)

	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func TestPurchaseService_ListPurchasesByPurchaser_StrangerForbidden(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	target := &entity.User{Email: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockUserRepo.EXPECT().FindByEmail(ctx, target.Email).Return(target, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	purchases, err := fx.service.ListPurchasesByPurchaser(ctx, requester, target.Email)

	assert.Nil(t, purchases)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestPurchaseService_ListPurchasesByPurchaser_AdminMayNameAnyone(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "admin@example.com", Admin: true}
	target := &entity.User{Email: "other@example.com"}
	stored := []*entity.Purchase{
		{ID: uuid.New(), PurchaserEmail: &target.Email},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockUserRepo.EXPECT().FindByEmail(ctx, target.Email).Return(target, nil)
			mockPurchaseRepo.EXPECT().ListByPurchaser(ctx, target.Email).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchases, err := fx.service.ListPurchasesByPurchaser(ctx, requester, target.Email)

	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func TestPurchaseService_ListPurchasesByPurchaser_GhostPurchaser(t *testing.T) {
	fx := createTestPurchaseService(t)

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

	purchases, err := fx.service.ListPurchasesByPurchaser(ctx, requester, "ghost@example.com")

	assert.Nil(t, purchases)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestPurchaseService_ListProductPurchases_ShopOwner(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "my-shop", OwnerEmail: requester.Email}
	product := &entity.Product{Slug: "widget", ShopSlug: shop.Slug}
	stored := []*entity.Purchase{
		{ID: uuid.New(), ProductSlug: &product.Slug},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, product.Slug).Return(product, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)
			mockPurchaseRepo.EXPECT().ListByProduct(ctx, product.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchases, err := fx.service.ListProductPurchases(ctx, requester, product.Slug)

	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func TestPurchaseService_ListProductPurchases_StrangerForbidden(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "their-shop", OwnerEmail: "other@example.com"}
	product := &entity.Product{Slug: "widget", ShopSlug: shop.Slug}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, product.Slug).Return(product, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	purchases, err := fx.service.ListProductPurchases(ctx, requester, product.Slug)

	assert.Nil(t, purchases)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestPurchaseService_ListShopPurchases_Owner(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "my-shop", OwnerEmail: requester.Email}
	stored := []*entity.Purchase{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)
			mockPurchaseRepo.EXPECT().ListByShop(ctx, shop.Slug).Return(stored, nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	purchases, err := fx.service.ListShopPurchases(ctx, requester, shop.Slug)

	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestPurchaseService_ListShopPurchases_StrangerForbidden(t *testing.T) {
	fx := createTestPurchaseService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "their-shop", OwnerEmail: "other@example.com"}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	purchases, err := fx.service.ListShopPurchases(ctx, requester, shop.Slug)

	assert.Nil(t, purchases)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
