package domain

import (
	"context"
	"time"
)

// ─── Ledger Events ──────────────────────────────────────────────────────────
// The ledger publishes an event after each committed change. Sinks run
// outside the ledger's critical section and must not call back into it.

// EventType names a ledger event.
type EventType string

const (
	EventOrderCompleted     EventType = "order_completed"
	EventPointsSpent        EventType = "points_spent"
	EventCheckoutRejected   EventType = "checkout_rejected"
	EventReservationCreated EventType = "reservation_created"
	EventCartChanged        EventType = "cart_changed"
)

// Event is a single ledger notification. Only the fields relevant to
// Type are set.
type Event struct {
	Type        EventType       `json:"type"`
	At          time.Time       `json:"at"`
	Order       *Order          `json:"order,omitempty"`
	Activity    *PointsActivity `json:"activity,omitempty"`
	Reservation *Reservation    `json:"reservation,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	CartItems   int             `json:"cart_items,omitempty"`
	Balance     Points          `json:"balance"`
}

// EventSink receives ledger events.
type EventSink interface {
	Publish(ctx context.Context, ev Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ctx context.Context, ev Event)

// Publish calls f.
func (f EventSinkFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }
