package entity

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records a completed sale. Product and purchaser references are
// nullable so the record survives deletion of either side.
type Purchase struct {
	ID             uuid.UUID // The unique ID for this purchase record.
	ProductSlug    *string   // The purchased product; nil once the product is deleted.
	PurchaserEmail *string   // The buying account; nil once the account is deleted.
	Amount         int       // Number of units bought.
	PaidCents      int64     // Unit price in cents, captured at purchase time.
	Time           time.Time // When the purchase happened.
}
