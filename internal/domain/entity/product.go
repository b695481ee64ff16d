package entity

import (
	"time"
)

// Product is an item listed in a shop. Ownership is transitive: whoever owns
// the shop owns the product.
type Product struct {
	Slug       string    // URL-friendly unique identifier.
	ShopSlug   string    // The shop this product is listed in.
	Name       string    // Display name of the product.
	PriceCents int64     // Unit price in cents; integers avoid float drift on money.
	Available  int       // Units currently in stock.
	Sold       int       // Units sold so far.
	Details    string    // Free-form product description.
	Picture    string    // Product image URL.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
