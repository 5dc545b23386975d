// Package observability exposes ledger activity as Prometheus metrics.
//
// Metrics is an event sink: attach it to the ledger and every committed
// change updates the counters and gauges below. All series live under the
// "brewpoint_ledger" prefix.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brewpoint/brewpoint/internal/domain"
)

const (
	namespace = "brewpoint"
	subsystem = "ledger"
)

// Metrics holds the ledger collectors registered on one registry.
type Metrics struct {
	OrdersTotal      *prometheus.CounterVec
	CheckoutFailures *prometheus.CounterVec
	PointsSpent      prometheus.Counter
	OrderValue       prometheus.Histogram
	CartItems        prometheus.Gauge
	RewardsBalance   prometheus.Gauge
	Reservations     prometheus.Counter
}

// NewMetrics registers the ledger collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OrdersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "orders_total",
			Help:      "Total completed orders by order type.",
		}, []string{"order_type"}),

		CheckoutFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_failures_total",
			Help:      "Total rejected checkouts by reason.",
		}, []string{"reason"}),

		PointsSpent: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "points_spent_total",
			Help:      "Total loyalty points spent as order discounts.",
		}),

		OrderValue: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "order_value",
			Help:      "Final price of completed orders.",
			Buckets:   []float64{50, 100, 200, 300, 500, 750, 1000, 2000},
		}),

		CartItems: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_items",
			Help:      "Current number of lines in the cart.",
		}),

		RewardsBalance: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rewards_balance",
			Help:      "Current loyalty points balance.",
		}),

		Reservations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reservations_total",
			Help:      "Total table reservations made.",
		}),
	}
}

// SetBalance seeds the balance gauge. The opening grant happens before
// any sink is attached, so callers set it once at startup.
func (m *Metrics) SetBalance(p domain.Points) {
	m.RewardsBalance.Set(float64(p))
}

// Publish implements domain.EventSink.
func (m *Metrics) Publish(_ context.Context, ev domain.Event) {
	switch ev.Type {
	case domain.EventOrderCompleted:
		if ev.Order != nil {
			m.OrdersTotal.WithLabelValues(string(ev.Order.OrderType)).Inc()
			m.OrderValue.Observe(ev.Order.FinalPrice.InexactFloat64())
		}
		m.RewardsBalance.Set(float64(ev.Balance))
	case domain.EventPointsSpent:
		if ev.Activity != nil {
			m.PointsSpent.Add(float64(-ev.Activity.Delta))
		}
		m.RewardsBalance.Set(float64(ev.Balance))
	case domain.EventCheckoutRejected:
		m.CheckoutFailures.WithLabelValues(ev.Reason).Inc()
	case domain.EventCartChanged:
		m.CartItems.Set(float64(ev.CartItems))
	case domain.EventReservationCreated:
		m.Reservations.Inc()
	}
}
