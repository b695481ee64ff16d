package usecase

import (
	"context"

	"bazar/internal/domain/entity"
)

// --- Input DTOs ---

// CreateShopInput defines the data required to open a new shop.
type CreateShopInput struct {
	Slug  string `json:"slug" validate:"required,max=64"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
	Logo  string `json:"logo"`
	// Owner defaults to the requester when empty; only admins may set it
	// to someone else.
	Owner string `json:"owner" validate:"omitempty,email"`
}

// UpdateShopInput carries optional field changes; nil fields stay untouched.
type UpdateShopInput struct {
	Slug  *string `json:"slug" validate:"omitempty,max=64"`
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Logo  *string `json:"logo"`
	Owner *string `json:"owner" validate:"omitempty,email"`
}

// ShopUsecase defines the interface for shop-related business operations.
type ShopUsecase interface {
	// ListShops returns all shops. Public.
	ListShops(ctx context.Context) ([]*entity.Shop, error)

	// GetShop returns one shop by slug. Public.
	GetShop(ctx context.Context, slug string) (*entity.Shop, error)

	// ListShopsByOwner returns the shops of one account; the owner or an admin only.
	ListShopsByOwner(ctx context.Context, requester *entity.User, ownerEmail string) ([]*entity.Shop, error)

	// CreateShop opens a new shop for the requester (or, for admins, any owner).
	CreateShop(ctx context.Context, requester *entity.User, input *CreateShopInput) (*entity.Shop, error)

	// UpdateShop applies the non-nil fields of input to a shop. When the
	// owner field changes hands, the requester must be authorized against
	// both the old and the new owner.
	UpdateShop(ctx context.Context, requester *entity.User, slug string, input *UpdateShopInput) (*entity.Shop, error)

	// DeleteShop removes a shop and its products.
	DeleteShop(ctx context.Context, requester *entity.User, slug string) error

	// ShopQR returns a PNG QR code for the shop's public storefront page. Public.
	ShopQR(ctx context.Context, slug string) ([]byte, error)
}
