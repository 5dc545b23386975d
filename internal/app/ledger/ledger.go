// Package ledger owns the session's cart, rewards account and order history.
//
// Every mutation runs under one mutex, so a checkout:
//  1. Validates the cart and request before touching any state
//  2. Prices the cart (subtotal, delivery fee, discount, final price)
//  3. Commits the order, spends points and clears the cart together
//  4. Publishes events to sinks after the lock is released
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Config controls ledger behavior.
type Config struct {
	InitialBalance domain.Points   // Points granted when the session opens (default: 10)
	DeliveryFee    decimal.Decimal // Flat fee for delivery orders (default: 50.00)
}

// DefaultConfig returns the standard session defaults.
func DefaultConfig() Config {
	return Config{
		InitialBalance: 10,
		DeliveryFee:    decimal.NewFromInt(50),
	}
}

// Option customizes a Ledger.
type Option func(*Ledger)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(lg *Ledger) {
		if l != nil {
			lg.logger = l
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(lg *Ledger) { lg.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(lg *Ledger) { lg.newID = gen }
}

// WithSink registers an event sink.
func WithSink(s domain.EventSink) Option {
	return func(lg *Ledger) { lg.sinks = append(lg.sinks, s) }
}

// Ledger is the single-session order ledger.
type Ledger struct {
	mu     sync.RWMutex
	config Config
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
	sinks  []domain.EventSink

	cart []domain.LineItem

	balance  domain.Points
	activity []domain.PointsActivity // oldest first; views reverse it

	history []domain.Order // oldest first; views reverse it
	byID    map[string]int

	reservations []domain.Reservation

	pointsSpent domain.Points
	rejected    int64
}

// New opens a ledger and records the initial points grant.
func New(cfg Config, opts ...Option) *Ledger {
	l := &Ledger{
		config: cfg,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  domain.NewID,
		byID:   make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.Named("ledger")

	if cfg.InitialBalance > 0 {
		l.appendActivity(domain.ActivityGrant, domain.DescWelcomeBonus, cfg.InitialBalance, "")
	}
	return l
}

// AddSink registers an event sink after construction.
func (l *Ledger) AddSink(s domain.EventSink) {
	l.mu.Lock()
	l.sinks = append(l.sinks, s)
	l.mu.Unlock()
}

// publish delivers events to every sink. Must be called without l.mu held.
func (l *Ledger) publish(ctx context.Context, events ...domain.Event) {
	l.mu.RLock()
	sinks := append([]domain.EventSink(nil), l.sinks...)
	l.mu.RUnlock()

	for _, ev := range events {
		for _, s := range sinks {
			s.Publish(ctx, ev)
		}
	}
}

// Stats is a point-in-time summary of the ledger.
type Stats struct {
	CartItems    int           `json:"cart_items"`
	Orders       int           `json:"orders"`
	Balance      domain.Points `json:"balance"`
	PointsSpent  domain.Points `json:"points_spent"`
	Rejected     int64         `json:"rejected_checkouts"`
	Reservations int           `json:"reservations"`
}

// Stats returns current ledger statistics.
func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return Stats{
		CartItems:    len(l.cart),
		Orders:       len(l.history),
		Balance:      l.balance,
		PointsSpent:  l.pointsSpent,
		Rejected:     l.rejected,
		Reservations: len(l.reservations),
	}
}
