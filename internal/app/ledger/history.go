package ledger

import (
	"fmt"
	"iter"
	"slices"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Orders returns the order history, newest first, as a lazy sequence.
// Each iteration takes a fresh snapshot, so the sequence can be ranged
// over repeatedly; orders appended mid-iteration are not visited.
func (l *Ledger) Orders() iter.Seq[domain.Order] {
	return func(yield func(domain.Order) bool) {
		l.mu.RLock()
		snap := l.history[:len(l.history):len(l.history)]
		l.mu.RUnlock()

		// Committed entries are never rewritten, so reading below the
		// snapshot length needs no lock.
		for i := len(snap) - 1; i >= 0; i-- {
			if !yield(snap[i].Clone()) {
				return
			}
		}
	}
}

// OrderList collects Orders into a slice.
func (l *Ledger) OrderList() []domain.Order {
	return slices.Collect(l.Orders())
}

// Order returns the order with the given id.
func (l *Ledger) Order(id string) (domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}
	return l.history[idx].Clone(), nil
}
