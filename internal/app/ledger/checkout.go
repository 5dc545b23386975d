package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Checkout turns the cart into an immutable order.
//
// Validation and pricing complete before any state changes. On success the
// order is at the head of history, the discount (if any) is deducted with
// one activity entry, and the cart is empty; all three happen under the
// same lock so no reader observes a partial checkout.
func (l *Ledger) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Order, error) {
	l.mu.Lock()

	order, err := l.prepareLocked(req)
	if err != nil {
		l.rejected++
		l.mu.Unlock()

		l.logger.Debug("checkout rejected", zap.Error(err))
		l.publish(ctx, domain.Event{Type: domain.EventCheckoutRejected, At: l.now(), Reason: rejectReason(err)})
		return domain.Order{}, err
	}

	// Commit: history, rewards, cart.
	l.history = append(l.history, order)
	l.byID[order.ID] = len(l.history) - 1
	var spent *domain.PointsActivity
	if order.Discount > 0 {
		act := l.applyDiscountLocked(order.Discount, order.ID)
		spent = &act
	}
	l.cart = nil
	balance := l.balance
	l.mu.Unlock()

	l.logger.Info("order completed",
		zap.String("order_id", order.ID),
		zap.String("order_type", string(order.OrderType)),
		zap.String("final_price", domain.FormatMoney(order.FinalPrice)),
		zap.Int64("discount", int64(order.Discount)),
	)

	out := order.Clone()
	events := []domain.Event{{Type: domain.EventOrderCompleted, At: order.CreatedAt, Order: &out, Balance: balance}}
	if spent != nil {
		events = append(events, domain.Event{Type: domain.EventPointsSpent, At: order.CreatedAt, Activity: spent, Balance: balance})
	}
	events = append(events, l.cartEvent(0))
	l.publish(ctx, events...)

	return order.Clone(), nil
}

// prepareLocked validates req against the current cart and balance and
// builds the order without mutating anything. l.mu must be held.
func (l *Ledger) prepareLocked(req domain.CheckoutRequest) (domain.Order, error) {
	if len(l.cart) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if !req.OrderType.Valid() {
		return domain.Order{}, domain.ErrInvalidOrderType
	}
	address := strings.TrimSpace(req.DeliveryAddress)
	if req.OrderType == domain.OrderDelivery && address == "" {
		return domain.Order{}, domain.ErrMissingAddress
	}
	if !req.PaymentMethod.Valid() {
		return domain.Order{}, domain.ErrMissingPaymentMethod
	}

	q, err := Price(l.cart, req.OrderType, l.config.DeliveryFee, req.DiscountPoints, l.balance)
	if err != nil {
		return domain.Order{}, fmt.Errorf("checkout: %w", err)
	}

	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		notes = domain.NotesNone
	}
	if req.OrderType != domain.OrderDelivery {
		address = ""
	}

	order := domain.Order{
		ID:              l.newID(),
		CreatedAt:       l.now(),
		Items:           append([]domain.LineItem(nil), l.cart...),
		Subtotal:        q.Subtotal,
		DeliveryFee:     q.DeliveryFee,
		GrandTotal:      q.GrandTotal,
		Discount:        q.Discount,
		FinalPrice:      q.FinalPrice,
		Status:          domain.StatusCompleted,
		OrderType:       req.OrderType,
		DeliveryAddress: address,
		PaymentMethod:   req.PaymentMethod,
		Notes:           notes,
	}

	if _, dup := l.byID[order.ID]; dup {
		return domain.Order{}, fmt.Errorf("checkout: duplicate order id %s", order.ID)
	}
	return order, nil
}

// rejectReason maps a checkout error to a stable metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrMissingAddress):
		return "missing_address"
	case errors.Is(err, domain.ErrMissingPaymentMethod):
		return "missing_payment_method"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrInvalidPoints):
		return "invalid_points"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
