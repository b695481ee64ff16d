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
	"bazar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service   usecase.ProductUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestProductService(t *testing.T) productServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return productServiceFixtures{
		service:   NewProductService(txManager, logger),
		txManager: txManager,
	}
}

func TestProductService_CreateProduct_InOwnShop(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "my-shop", OwnerEmail: requester.Email}
	input := &usecase.CreateProductInput{
		Slug:       "widget",
		ShopSlug:   shop.Slug,
		Name:       "Widget",
		PriceCents: 1500,
		Available:  10,
	}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)
			mockProductRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, product *entity.Product) {
					assert.Equal(t, input.Slug, product.Slug)
					assert.Equal(t, shop.Slug, product.ShopSlug)
					assert.Zero(t, product.Sold)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, requester, input)

	require.NoError(t, err)
	assert.Equal(t, input.Slug, product.Slug)
}

func TestProductService_CreateProduct_InForeignShopForbidden(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "their-shop", OwnerEmail: "other@example.com"}
	input := &usecase.CreateProductInput{
		Slug:     "widget",
		ShopSlug: shop.Slug,
		Name:     "Widget",
	}

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

	product, err := fx.service.CreateProduct(ctx, requester, input)

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_CreateProduct_ShopMissing(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	input := &usecase.CreateProductInput{
		Slug:     "widget",
		ShopSlug: "ghost",
		Name:     "Widget",
	}

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

	product, err := fx.service.CreateProduct(ctx, requester, input)

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

// Moving a product between two shops the requester owns is allowed; the
// destination shop's owner is checked after the change is applied.
func TestProductService_UpdateProduct_MoveBetweenOwnShops(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	srcShop := &entity.Shop{Slug: "shop-a", OwnerEmail: requester.Email}
	dstShop := &entity.Shop{Slug: "shop-b", OwnerEmail: requester.Email}
	stored := &entity.Product{Slug: "widget", ShopSlug: srcShop.Slug}
	newShopSlug := dstShop.Slug

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, srcShop.Slug).Return(srcShop, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, dstShop.Slug).Return(dstShop, nil)
			mockProductRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, slug string, product *entity.Product) {
					assert.Equal(t, dstShop.Slug, product.ShopSlug)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	product, err := fx.service.UpdateProduct(ctx, requester, stored.Slug, &usecase.UpdateProductInput{
		ShopSlug: &newShopSlug,
	})

	require.NoError(t, err)
	assert.Equal(t, dstShop.Slug, product.ShopSlug)
}

// Moving a product into someone else's shop fails on the second ownership
// check, after the first one passed against the current shop.
func TestProductService_UpdateProduct_MoveToForeignShopForbidden(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	srcShop := &entity.Shop{Slug: "shop-a", OwnerEmail: requester.Email}
	dstShop := &entity.Shop{Slug: "shop-b", OwnerEmail: "other@example.com"}
	stored := &entity.Product{Slug: "widget", ShopSlug: srcShop.Slug}
	newShopSlug := dstShop.Slug

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, srcShop.Slug).Return(srcShop, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, dstShop.Slug).Return(dstShop, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	product, err := fx.service.UpdateProduct(ctx, requester, stored.Slug, &usecase.UpdateProductInput{
		ShopSlug: &newShopSlug,
	})

	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_UpdateProduct_OwnerEditsFields(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "my-shop", OwnerEmail: requester.Email}
	stored := &entity.Product{Slug: "widget", ShopSlug: shop.Slug, PriceCents: 1000, Available: 5}
	newPrice := int64(2000)
	newAvailable := 8

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			// Shop is resolved twice, before and after the changes; the shop
			// itself did not move, so both lookups hit the same slug.
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil).Times(2)
			mockProductRepo.EXPECT().
				Update(ctx, stored.Slug, mock.AnythingOfType("*entity.Product")).
				Run(func(ctx context.Context, slug string, product *entity.Product) {
					assert.Equal(t, newPrice, product.PriceCents)
					assert.Equal(t, newAvailable, product.Available)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	product, err := fx.service.UpdateProduct(ctx, requester, stored.Slug, &usecase.UpdateProductInput{
		PriceCents: &newPrice,
		Available:  &newAvailable,
	})

	require.NoError(t, err)
	assert.Equal(t, newPrice, product.PriceCents)
}

func TestProductService_DeleteProduct_StrangerForbidden(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "their-shop", OwnerEmail: "other@example.com"}
	stored := &entity.Product{Slug: "widget", ShopSlug: shop.Slug}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)

			_ = fn(mockFactory)
		}).
		Return(domainerrors.ErrForbidden)

	err := fx.service.DeleteProduct(ctx, requester, stored.Slug)

	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestProductService_DeleteProduct_Owner(t *testing.T) {
	fx := createTestProductService(t)

	ctx := context.Background()
	requester := &entity.User{Email: "me@example.com"}
	shop := &entity.Shop{Slug: "my-shop", OwnerEmail: requester.Email}
	stored := &entity.Product{Slug: "widget", ShopSlug: shop.Slug}

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockShopRepo := mockRepo.NewMockShopRepository(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ShopRepo().Return(mockShopRepo)
			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindBySlug(ctx, stored.Slug).Return(stored, nil)
			mockShopRepo.EXPECT().FindBySlug(ctx, shop.Slug).Return(shop, nil)
			mockProductRepo.EXPECT().Delete(ctx, stored.Slug).Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.DeleteProduct(ctx, requester, stored.Slug)

	require.NoError(t, err)
}
