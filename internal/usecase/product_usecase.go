package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to list a new product.
type CreateProductInput struct {
	Slug       string `json:"slug" validate:"required,max=64"`
	ShopSlug   string `json:"shop_slug" validate:"required,max=64"`
	Name       string `json:"name" validate:"required"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
	Available  int    `json:"available" validate:"gte=0"`
	Details    string `json:"details"`
	Picture    string `json:"picture"`
}

// UpdateProductInput carries optional field changes; nil fields stay untouched.
type UpdateProductInput struct {
	Slug       *string `json:"slug" validate:"omitempty,max=64"`
	ShopSlug   *string `json:"shop_slug" validate:"omitempty,max=64"`
	Name       *string `json:"name"`
	PriceCents *int64  `json:"price_cents" validate:"omitempty,gte=0"`
	Available  *int    `json:"available" validate:"omitempty,gte=0"`
	Details    *string `json:"details"`
	Picture    *string `json:"picture"`
}

// ProductUsecase defines the interface for product-related business operations.
// A product belongs to whoever owns its shop; every mutation checks that
// transitive ownership.
type ProductUsecase interface {
	// ListProducts returns all products. Public.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// ListShopProducts returns a shop's products. Public.
	ListShopProducts(ctx context.Context, shopSlug string) ([]*entity.Product, error)

	// GetProduct returns one product by slug. Public.
	GetProduct(ctx context.Context, slug string) (*entity.Product, error)

	// CreateProduct lists a product in a shop the requester owns (or, for
	// admins, any shop).
	CreateProduct(ctx context.Context, requester *entity.User, input *CreateProductInput) (*entity.Product, error)

	// UpdateProduct applies the non-nil fields of input to a product. Moving
	// a product to another shop requires authorization against both the old
	// and the new shop's owner.
	UpdateProduct(ctx context.Context, requester *entity.User, slug string, input *UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product.
	DeleteProduct(ctx context.Context, requester *entity.User, slug string) error
}
