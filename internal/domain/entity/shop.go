package entity

import (
	"time"
)

// Shop is an independent storefront owned by a single account.
type Shop struct {
	Slug       string    // URL-friendly unique identifier, chosen by the owner.
	Name       string    // Display name of the shop.
	Color      string    // Theme color as up to six hex digits, stored without the leading '#'.
	Logo       string    // Logo image URL.
	OwnerEmail string    // The account that owns this shop.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
