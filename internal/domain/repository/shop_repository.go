package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"
)

// ErrShopNotFound is a domain-specific error returned when a shop is not found.
var ErrShopNotFound = errors.New("shop not found")

// ShopRepository defines the standard operations for shop persistence.
type ShopRepository interface {
	// FindBySlug retrieves a single shop by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Shop, error)

	// List retrieves all shops, ordered by slug.
	List(ctx context.Context) ([]*entity.Shop, error)

	// ListByOwner retrieves all shops owned by an account.
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Shop, error)

	// Create persists a new shop.
	Create(ctx context.Context, shop *entity.Shop) error

	// Update modifies an existing shop. slug addresses the current row;
	// shop.Slug may differ when the shop is being renamed.
	Update(ctx context.Context, slug string, shop *entity.Shop) error

	// Delete removes a shop by slug. Its products cascade at the schema level.
	Delete(ctx context.Context, slug string) error
}
