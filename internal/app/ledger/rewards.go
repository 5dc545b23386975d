package ledger

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// QuoteDiscount previews the currency value of spending points without
// changing the balance. Nothing is reserved: checkout re-validates.
func (l *Ledger) QuoteDiscount(points domain.Points) (decimal.Decimal, error) {
	if points <= 0 {
		return decimal.Zero, domain.ErrInvalidPoints
	}

	l.mu.RLock()
	balance := l.balance
	l.mu.RUnlock()

	if points > balance {
		return decimal.Zero, fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientPoints, balance, points)
	}
	return domain.RoundMoney(points.Money()), nil
}

// Redeem validates a catalog redemption. No catalog exists yet, so the
// balance is left untouched and the result says so.
func (l *Ledger) Redeem(points domain.Points) (domain.RedeemResult, error) {
	if _, err := l.QuoteDiscount(points); err != nil {
		return domain.RedeemResult{}, fmt.Errorf("redeem: %w", err)
	}
	return domain.RedeemResult{Points: points, Applied: false, Note: domain.RedeemNotWired}, nil
}

// Balance returns the current points balance.
func (l *Ledger) Balance() domain.Points {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// PointsHistory returns the activity log, newest first.
func (l *Ledger) PointsHistory() []domain.PointsActivity {
	l.mu.RLock()
	out := append([]domain.PointsActivity(nil), l.activity...)
	l.mu.RUnlock()

	slices.Reverse(out)
	return out
}

// ReconcileBalance sums every activity delta and reports whether the sum
// matches the balance.
func (l *Ledger) ReconcileBalance() (domain.Points, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sum domain.Points
	for _, a := range l.activity {
		sum += a.Delta
	}
	return sum, sum == l.balance
}

// applyDiscountLocked spends points for a committed order. It is only
// reachable from Checkout, once per order. l.mu must be held and the
// amount already validated against the balance.
func (l *Ledger) applyDiscountLocked(points domain.Points, orderID string) domain.PointsActivity {
	l.pointsSpent += points
	return l.appendActivity(domain.ActivityDiscount, domain.DescDiscountApplied, -points, orderID)
}

// appendActivity adjusts the balance and records the change.
func (l *Ledger) appendActivity(kind domain.ActivityKind, desc string, delta domain.Points, orderID string) domain.PointsActivity {
	now := l.now()
	l.balance += delta
	act := domain.PointsActivity{
		ID:          l.newID(),
		Date:        now.Format(domain.DateLayout),
		OccurredAt:  now,
		Kind:        kind,
		Description: desc,
		Delta:       delta,
		OrderID:     orderID,
		Balance:     l.balance,
	}
	l.activity = append(l.activity, act)
	return act
}
