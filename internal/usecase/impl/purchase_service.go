package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/policy"
	"bazar/internal/domain/repository"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// purchaseService implements the PurchaseUsecase interface.
type purchaseService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewPurchaseService is the constructor for purchaseService.
func NewPurchaseService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.PurchaseUsecase {
	return &purchaseService{
		txManager: txManager,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *purchaseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePurchase buys a product for the requester. The stock check, the
// counter updates and the purchase record all live in one transaction, so two
// concurrent buyers can never both take the last unit.
func (srv *purchaseService) CreatePurchase(ctx context.Context, requester *entity.User, input *usecase.CreatePurchaseInput) (*entity.Purchase, error) {
	srv.log(ctx).Info("Processing purchase",
		slog.String("email", requester.Email),
		slog.String("product", input.ProductSlug),
		slog.Int("amount", input.Amount),
	)

	var purchase *entity.Purchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		// 1. Load the product and check stock
		product, err := productRepo.FindBySlug(ctx, input.ProductSlug)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if input.Amount > product.Available {
			return errors.Wrap(domainerrors.ErrProductUnavailable, "not enough stock")
		}

		// 2. Move stock to sold
		product.Available -= input.Amount
		product.Sold += input.Amount
		if err := productRepo.Update(ctx, product.Slug, product); err != nil {
			return errors.Wrap(err, "failed to update product stock")
		}

		// 3. Record the sale with the unit price captured at this moment,
		// so later price edits never rewrite purchase history
		productSlug := product.Slug
		purchaserEmail := requester.Email
		purchase = &entity.Purchase{
			ProductSlug:    &productSlug,
			PurchaserEmail: &purchaserEmail,
			Amount:         input.Amount,
			PaidCents:      product.PriceCents,
			Time:           time.Now(),
		}
		if err := repoFactory.PurchaseRepo().Create(ctx, purchase); err != nil {
			return errors.Wrap(err, "failed to record purchase")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Purchase failed",
			slog.String("email", requester.Email),
			slog.String("product", input.ProductSlug),
			slog.Any("error", err),
		)

		return nil, err
	}
	srv.log(ctx).Info("Purchase completed",
		slog.String("email", requester.Email),
		slog.String("product", input.ProductSlug),
		slog.Int64("paid_cents", purchase.PaidCents),
	)

	return purchase, nil
}

// ListPurchases returns every purchase record; admins only. The listing has
// no single owner, so the ownership rule cannot apply and the admin flag is
// checked directly.
func (srv *purchaseService) ListPurchases(ctx context.Context, requester *entity.User) ([]*entity.Purchase, error) {
	if requester == nil || !requester.Admin {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "listing all purchases requires admin")
	}

	var purchases []*entity.Purchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		purchases, err = repoFactory.PurchaseRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list purchases")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list purchases", slog.Any("error", err))

		return nil, err
	}

	return purchases, nil
}

// ListPurchasesByPurchaser returns an account's purchase history, newest
// first; the account itself or an admin only.
func (srv *purchaseService) ListPurchasesByPurchaser(ctx context.Context, requester *entity.User, purchaserEmail string) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The target must exist so a ghost email reads as not-found, the
		// same answer its empty history would otherwise fake.
		if _, err := repoFactory.UserRepo().FindByEmail(ctx, purchaserEmail); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: purchaserEmail}, policy.ActionRead); err != nil {
			return err
		}

		var err error
		purchases, err = repoFactory.PurchaseRepo().ListByPurchaser(ctx, purchaserEmail)
		if err != nil {
			return errors.Wrap(err, "failed to list purchases")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to list purchases", slog.Any("error", err), slog.String("email", purchaserEmail))

		return nil, err
	}

	return purchases, nil
}

// ListProductPurchases returns all sales of one product; the owner of the
// product's shop or an admin only.
func (srv *purchaseService) ListProductPurchases(ctx context.Context, requester *entity.User, productSlug string) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		product, err := repoFactory.ProductRepo().FindBySlug(ctx, productSlug)
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

		if err := policy.Authorize(requester, owner, policy.ActionRead); err != nil {
			return err
		}

		purchases, err = repoFactory.PurchaseRepo().ListByProduct(ctx, productSlug)
		if err != nil {
			return errors.Wrap(err, "failed to list product purchases")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to list product purchases", slog.Any("error", err), slog.String("product", productSlug))

		return nil, err
	}

	return purchases, nil
}

// ListShopPurchases returns all sales of a shop; the shop owner or an admin only.
func (srv *purchaseService) ListShopPurchases(ctx context.Context, requester *entity.User, shopSlug string) ([]*entity.Purchase, error) {
	var purchases []*entity.Purchase

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shop, err := repoFactory.ShopRepo().FindBySlug(ctx, shopSlug)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "shop not found")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: shop.OwnerEmail}, policy.ActionRead); err != nil {
			return err
		}

		purchases, err = repoFactory.PurchaseRepo().ListByShop(ctx, shopSlug)
		if err != nil {
			return errors.Wrap(err, "failed to list shop purchases")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to list shop purchases", slog.Any("error", err), slog.String("shop", shopSlug))

		return nil, err
	}

	return purchases, nil
}
