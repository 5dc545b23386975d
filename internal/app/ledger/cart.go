package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// AddItem appends an item to the end of the cart and returns its position.
// Identical items are kept as separate entries.
func (l *Ledger) AddItem(ctx context.Context, item domain.LineItem) (int, error) {
	if err := item.Validate(); err != nil {
		return -1, fmt.Errorf("add item %q: %w", item.Name, err)
	}

	l.mu.Lock()
	l.cart = append(l.cart, item)
	idx, n := len(l.cart)-1, len(l.cart)
	l.mu.Unlock()

	l.logger.Debug("item added", zap.String("name", item.Name), zap.Int("quantity", item.Quantity))
	l.publish(ctx, l.cartEvent(n))
	return idx, nil
}

// RemoveItem removes the first entry equal to item. It reports whether an
// entry was removed; removing an absent item is a no-op. Only one entry is
// removed even when the cart holds several identical ones.
func (l *Ledger) RemoveItem(ctx context.Context, item domain.LineItem) bool {
	l.mu.Lock()
	idx := -1
	for i, it := range l.cart {
		if it.Equal(item) {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	l.cart = append(l.cart[:idx], l.cart[idx+1:]...)
	n := len(l.cart)
	l.mu.Unlock()

	l.publish(ctx, l.cartEvent(n))
	return true
}

// RemoveAt removes the entry at position idx.
func (l *Ledger) RemoveAt(ctx context.Context, idx int) (domain.LineItem, error) {
	l.mu.Lock()
	if idx < 0 || idx >= len(l.cart) {
		l.mu.Unlock()
		return domain.LineItem{}, fmt.Errorf("cart position %d: %w", idx, domain.ErrNotFound)
	}
	removed := l.cart[idx]
	l.cart = append(l.cart[:idx], l.cart[idx+1:]...)
	n := len(l.cart)
	l.mu.Unlock()

	l.publish(ctx, l.cartEvent(n))
	return removed, nil
}

// ClearCart empties the cart unconditionally.
func (l *Ledger) ClearCart(ctx context.Context) {
	l.mu.Lock()
	l.cart = nil
	l.mu.Unlock()

	l.publish(ctx, l.cartEvent(0))
}

// Cart returns a copy of the pending items in insertion order.
func (l *Ledger) Cart() []domain.LineItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.LineItem(nil), l.cart...)
}

// Subtotal returns Σ unitPrice × quantity over the cart, rounded to cents.
func (l *Ledger) Subtotal() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Subtotal(l.cart)
}

func (l *Ledger) cartEvent(n int) domain.Event {
	return domain.Event{Type: domain.EventCartChanged, At: l.now(), CartItems: n}
}
