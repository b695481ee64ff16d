package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/policy"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// shopOwner resolves the owner of a shop so product mutations can be
// authorized against them. A missing shop surfaces as not-found.
func shopOwner(ctx context.Context, repoFactory repository.RepositoryFactory, shopSlug string) (policy.Owner, error) {
	shop, err := repoFactory.ShopRepo().FindBySlug(ctx, shopSlug)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return policy.Owner{}, errors.Wrap(domainerrors.ErrNotFound, "shop not found")
		}

		return policy.Owner{}, errors.Wrap(err, "failed to find shop")
	}

	return policy.Owner{Email: shop.OwnerEmail}, nil
}

// ListProducts returns all products. Public.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, err
	}

	return products, nil
}

// ListShopProducts returns a shop's products. Public.
func (srv *productService) ListShopProducts(ctx context.Context, shopSlug string) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ShopRepo().FindBySlug(ctx, shopSlug); err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "shop not found")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		var err error
		products, err = repoFactory.ProductRepo().ListByShop(ctx, shopSlug)
		if err != nil {
			return errors.Wrap(err, "failed to list shop products")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct returns one product by slug. Public.
func (srv *productService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		product, err = repoFactory.ProductRepo().FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return product, nil
}

// CreateProduct lists a product in a shop. Authorization runs against the
// target shop's owner; products have no owner of their own.
func (srv *productService) CreateProduct(ctx context.Context, requester *entity.User, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("slug", input.Slug), slog.String("shop", input.ShopSlug))

	product := &entity.Product{
		Slug:       input.Slug,
		ShopSlug:   input.ShopSlug,
		Name:       input.Name,
		PriceCents: input.PriceCents,
		Available:  input.Available,
		Details:    input.Details,
		Picture:    input.Picture,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		owner, err := shopOwner(ctx, repoFactory, input.ShopSlug)
		if err != nil {
			return err
		}

		if err := policy.Authorize(requester, owner, policy.ActionWrite); err != nil {
			return err
		}

		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Product creation failed", slog.String("slug", input.Slug), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Product created", slog.String("slug", product.Slug))

	return product, nil
}

// UpdateProduct applies the non-nil fields of input to a product. Moving a
// product into a different shop is authorized twice: against the current
// shop's owner before the change and against the destination shop's owner
// after, so a product cannot be pushed into a shop the requester has no say
// over.
func (srv *productService) UpdateProduct(ctx context.Context, requester *entity.User, slug string, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Updating product", slog.String("slug", slug))

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// 1. Load the current state and authorize against the current shop's owner
		var err error
		product, err = productRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		owner, err := shopOwner(ctx, repoFactory, product.ShopSlug)
		if err != nil {
			return err
		}
		if err := policy.Authorize(requester, owner, policy.ActionWrite); err != nil {
			return err
		}

		// 2. Apply the requested changes
		if input.Slug != nil {
			product.Slug = *input.Slug
		}
		if input.ShopSlug != nil {
			product.ShopSlug = *input.ShopSlug
		}
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.PriceCents != nil {
			product.PriceCents = *input.PriceCents
		}
		if input.Available != nil {
			product.Available = *input.Available
		}
		if input.Details != nil {
			product.Details = *input.Details
		}
		if input.Picture != nil {
			product.Picture = *input.Picture
		}

		// 3. Authorize again against the resulting shop's owner
		newOwner, err := shopOwner(ctx, repoFactory, product.ShopSlug)
		if err != nil {
			return err
		}
		if err := policy.Authorize(requester, newOwner, policy.ActionWrite); err != nil {
			return err
		}

		if err := productRepo.Update(ctx, slug, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Product update failed", slog.String("slug", slug), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Product updated", slog.String("slug", product.Slug))

	return product, nil
}

// DeleteProduct removes a product. Past purchases of it survive with their
// product reference cleared by the storage layer.
func (srv *productService) DeleteProduct(ctx context.Context, requester *entity.User, slug string) error {
	srv.log(ctx).Info("Deleting product", slog.String("slug", slug))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		owner, err := shopOwner(ctx, repoFactory, product.ShopSlug)
		if err != nil {
			return err
		}
		if err := policy.Authorize(requester, owner, policy.ActionDelete); err != nil {
			return err
		}

		if err := productRepo.Delete(ctx, slug); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Product deletion failed", slog.String("slug", slug), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Product deleted", slog.String("slug", slug))

	return nil
}
