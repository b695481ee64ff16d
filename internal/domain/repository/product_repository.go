package repository

import (
	"context"
	"errors"

	"bazar/internal/domain/entity"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindBySlug retrieves a single product by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)

	// List retrieves all products, ordered by slug.
	List(ctx context.Context) ([]*entity.Product, error)

	// ListByShop retrieves all products listed in a shop.
	ListByShop(ctx context.Context, shopSlug string) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product. slug addresses the current row;
	// product.Slug may differ when the product is being renamed.
	Update(ctx context.Context, slug string, product *entity.Product) error

	// Delete removes a product by slug.
	Delete(ctx context.Context, slug string) error
}
