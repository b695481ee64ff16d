package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "bazar/internal/delivery/context"
	"bazar/internal/domain/entity"
	domainerrors "bazar/internal/domain/errors"
	"bazar/internal/domain/policy"
	"bazar/internal/domain/repository"
	"bazar/internal/domain/service"
	"bazar/internal/usecase"

	"github.com/pkg/errors"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	txManager repository.TransactionManager
	qrSvc     service.QRCodeService
	logger    *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(
	txManager repository.TransactionManager,
	qrSvc service.QRCodeService,
	logger *slog.Logger,
) usecase.ShopUsecase {
	return &shopService{
		txManager: txManager,
		qrSvc:     qrSvc,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeColor strips a leading '#' and validates that the remainder is at
// most six hex digits. The stored form never carries the '#'.
func normalizeColor(color string) (string, error) {
	color = strings.TrimPrefix(color, "#")
	if len(color) > 6 {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "color exceeds six hex digits")
	}
	for _, r := range color {
		isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
		if !isHex {
			return "", errors.Wrap(domainerrors.ErrValidationFailed, "color is not a hex string")
		}
	}

	return color, nil
}

// ListShops returns all shops. Public.
func (srv *shopService) ListShops(ctx context.Context) ([]*entity.Shop, error) {
	var shops []*entity.Shop

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		shops, err = repoFactory.ShopRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list shops")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list shops", slog.Any("error", err))

		return nil, err
	}

	return shops, nil
}

// GetShop returns one shop by slug. Public.
func (srv *shopService) GetShop(ctx context.Context, slug string) (*entity.Shop, error) {
	var shop *entity.Shop

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		shop, err = repoFactory.ShopRepo().FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "shop not found")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return shop, nil
}

// ListShopsByOwner returns the shops of one account; the owner or an admin only.
func (srv *shopService) ListShopsByOwner(ctx context.Context, requester *entity.User, ownerEmail string) ([]*entity.Shop, error) {
	if err := policy.Authorize(requester, policy.Owner{Email: ownerEmail}, policy.ActionRead); err != nil {
		return nil, err
	}

	var shops []*entity.Shop

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		shops, err = repoFactory.ShopRepo().ListByOwner(ctx, ownerEmail)
		if err != nil {
			return errors.Wrap(err, "failed to list shops by owner")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Error("Failed to list shops by owner", slog.Any("error", err), slog.String("owner", ownerEmail))

		return nil, err
	}

	return shops, nil
}

// CreateShop opens a new shop. The owner defaults to the requester; naming a
// different owner is itself an act on that owner's behalf and is authorized
// against them, which in practice means only admins can do it.
func (srv *shopService) CreateShop(ctx context.Context, requester *entity.User, input *usecase.CreateShopInput) (*entity.Shop, error) {
	srv.log(ctx).Info("Creating shop", slog.String("slug", input.Slug))

	owner := input.Owner
	if owner == "" {
		owner = requester.Email
	}
	if err := policy.Authorize(requester, policy.Owner{Email: owner}, policy.ActionWrite); err != nil {
		return nil, err
	}

	color, err := normalizeColor(input.Color)
	if err != nil {
		return nil, err
	}

	shop := &entity.Shop{
		Slug:       input.Slug,
		Name:       input.Name,
		Color:      color,
		Logo:       input.Logo,
		OwnerEmail: owner,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ShopRepo().Create(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to create shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Shop creation failed", slog.String("slug", input.Slug), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Shop created", slog.String("slug", shop.Slug), slog.String("owner", owner))

	return shop, nil
}

// UpdateShop applies the non-nil fields of input to a shop. A change of owner
/// is authorized twice: once against the current owner before any field is
// touched, and once against the resulting owner after the changes are applied,
// so nobody can hand a shop to an account they could not act for.
func (srv *shopService) UpdateShop(ctx context.Context, requester *entity.User, slug string, input *usecase.UpdateShopInput) (*entity.Shop, error) {
	srv.log(ctx).Info("Updating shop", slog.String("slug", slug))

	var shop *entity.Shop

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.ShopRepo()

		// 1. Load the current state and authorize against the current owner
		var err error
		shop, err = shopRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "shop not found")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: shop.OwnerEmail}, policy.ActionWrite); err != nil {
			return err
		}

		// 2. Apply the requested changes
		if input.Slug != nil {
			shop.Slug = *input.Slug
		}
		if input.Name != nil {
			shop.Name = *input.Name
		}
		if input.Color != nil {
			color, err := normalizeColor(*input.Color)
			if err != nil {
				return err
			}
			shop.Color = color
		}
		if input.Logo != nil {
			shop.Logo = *input.Logo
		}
		if input.Owner != nil {
			shop.OwnerEmail = *input.Owner
		}

		// 3. Authorize again against the resulting owner
		if err := policy.Authorize(requester, policy.Owner{Email: shop.OwnerEmail}, policy.ActionWrite); err != nil {
			return err
		}

		if err := shopRepo.Update(ctx, slug, shop); err != nil {
			return errors.Wrap(err, "failed to update shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Shop update failed", slog.String("slug", slug), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Shop updated", slog.String("slug", shop.Slug))

	return shop, nil
}

// DeleteShop removes a shop; its products go with it via the storage cascade.
func (srv *shopService) DeleteShop(ctx context.Context, requester *entity.User, slug string) error {
	srv.log(ctx).Info("Deleting shop", slog.String("slug", slug))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		shopRepo := repoFactory.ShopRepo()

		shop, err := shopRepo.FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrShopNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "shop not found")
			}

			return errors.Wrap(err, "failed to find shop")
		}

		if err := policy.Authorize(requester, policy.Owner{Email: shop.OwnerEmail}, policy.ActionDelete); err != nil {
			return err
		}

		if err := shopRepo.Delete(ctx, slug); err != nil {
			return errors.Wrap(err, "failed to delete shop")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Shop deletion failed", slog.String("slug", slug), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Shop deleted", slog.String("slug", slug))

	return nil
}

// ShopQR renders a PNG QR code pointing at the shop's storefront page. The
// shop must exist; the code itself only encodes the public URL.
func (srv *shopService) ShopQR(ctx context.Context, slug string) ([]byte, error) {
	if _, err := srv.GetShop(ctx, slug); err != nil {
		return nil, err
	}

	png, err := srv.qrSvc.GenerateShopQR(slug)
	if err != nil {
		srv.log(ctx).Error("Failed to render shop QR code", slog.String("slug", slug), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to render QR code")
	}

	return png, nil
}
