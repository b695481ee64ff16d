package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// --- Input DTOs ---

// CreatePurchaseInput defines the data required to buy a product.
type CreatePurchaseInput struct {
	ProductSlug string `json:"product_slug" validate:"required"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
}

// PurchaseUsecase defines the interface for purchase-related business operations.
type PurchaseUsecase interface {
	// CreatePurchase buys a product for the requester: stock decreases,
	// the sold counter increases and the unit price of the moment is
	// captured, all in one transaction.
	CreatePurchase(ctx context.Context, requester *entity.User, input *CreatePurchaseInput) (*entity.Purchase, error)

	// ListPurchases returns every purchase record; admins only.
	ListPurchases(ctx context.Context, requester *entity.User) ([]*entity.Purchase, error)

	// ListPurchasesByPurchaser returns an account's purchase history; the
	// account itself or an admin only.
	ListPurchasesByPurchaser(ctx context.Context, requester *entity.User, purchaserEmail string) ([]*entity.Purchase, error)

	// ListProductPurchases returns all sales of one product; the owner of the
	// product's shop or an admin only.
	ListProductPurchases(ctx context.Context, requester *entity.User, productSlug string) ([]*entity.Purchase, error)

	// ListShopPurchases returns all sales of a shop; the shop owner or an admin only.
	ListShopPurchases(ctx context.Context, requester *entity.User, shopSlug string) ([]*entity.Purchase, error)
}
