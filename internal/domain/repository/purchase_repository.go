package repository

import (
	"context"

	"bazar/internal/domain/entity"
)

// PurchaseRepository defines the standard operations for purchase persistence.
// Purchases are append-only records; there is no update or delete.
type PurchaseRepository interface {
	// Create persists a new purchase record.
	Create(ctx context.Context, purchase *entity.Purchase) error

	// List retrieves every purchase record, newest first.
	List(ctx context.Context) ([]*entity.Purchase, error)

	// ListByPurchaser retrieves all purchases made by an account, newest first.
	ListByPurchaser(ctx context.Context, purchaserEmail string) ([]*entity.Purchase, error)

	// ListByProduct retrieves all purchases of one product, newest first.
	ListByProduct(ctx context.Context, productSlug string) ([]*entity.Purchase, error)

	// ListByShop retrieves all purchases of products listed in a shop, newest first.
	ListByShop(ctx context.Context, shopSlug string) ([]*entity.Purchase, error)
}
