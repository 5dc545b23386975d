package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Quote is the priced breakdown of a cart. All money fields are rounded
// to two decimals, half away from zero.
type Quote struct {
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	GrandTotal  decimal.Decimal
	Discount    domain.Points
	FinalPrice  decimal.Decimal
}

// Subtotal returns Σ unitPrice × quantity. An empty cart totals zero.
func Subtotal(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.LineTotal())
	}
	return domain.RoundMoney(sum)
}

// DeliveryFee returns fee for delivery orders and zero for every other type.
func DeliveryFee(t domain.OrderType, fee decimal.Decimal) decimal.Decimal {
	if t == domain.OrderDelivery {
		return domain.RoundMoney(fee)
	}
	return domain.RoundMoney(decimal.Zero)
}

// Price computes the checkout breakdown for items. balance is the points
// available to spend; the discount may exceed neither balance nor the
// grand total.
func Price(items []domain.LineItem, t domain.OrderType, fee decimal.Decimal, discount, balance domain.Points) (Quote, error) {
	if discount < 0 {
		return Quote{}, domain.ErrInvalidPoints
	}

	q := Quote{
		Subtotal:    Subtotal(items),
		DeliveryFee: DeliveryFee(t, fee),
		Discount:    discount,
	}
	q.GrandTotal = domain.RoundMoney(q.Subtotal.Add(q.DeliveryFee))

	if discount > balance {
		return Quote{}, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientPoints, balance, discount)
	}
	if discount.Money().GreaterThan(q.GrandTotal) {
		return Quote{}, fmt.Errorf("%w: discount %d exceeds grand total %s",
			domain.ErrInsufficientPoints, discount, domain.FormatMoney(q.GrandTotal))
	}

	q.FinalPrice = domain.RoundMoney(q.GrandTotal.Sub(discount.Money()))
	return q, nil
}
