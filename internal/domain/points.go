package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Loyalty Points ─────────────────────────────────────────────────────────
// One point is worth one unit of currency when spent as a discount.

// Points is a whole number of loyalty points.
type Points int64

// Money converts points to their currency value at the 1:1 exchange rate.
func (p Points) Money() decimal.Decimal {
	return decimal.NewFromInt(int64(p))
}

// ActivityKind is the business reason for a balance change.
type ActivityKind string

const (
	ActivityGrant    ActivityKind = "GRANT"
	ActivityDiscount ActivityKind = "DISCOUNT"
)

// Activity descriptions shown in the points history.
const (
	DescWelcomeBonus    = "Welcome bonus"
	DescDiscountApplied = "Discount applied to order"
)

// PointsActivity is an append-only entry in the rewards log.
// Delta is negative when points are spent.
type PointsActivity struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"` // YYYY-MM-DD
	OccurredAt  time.Time    `json:"occurred_at"`
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	Delta       Points       `json:"delta"`
	OrderID     string       `json:"order_id,omitempty"`
	Balance     Points       `json:"balance"`
}

// RedeemResult reports the outcome of the catalog redemption path.
// Redemption validates the balance but has no effect until a reward
// catalog exists.
type RedeemResult struct {
	Points  Points `json:"points"`
	Applied bool   `json:"applied"`
	Note    string `json:"note"`
}

// RedeemNotWired is the note attached to every redemption today.
const RedeemNotWired = "not yet wired to a reward catalog"
