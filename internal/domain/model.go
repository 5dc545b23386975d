// Package domain contains pure business types for the ordering ledger.
// It is the innermost ring: money arithmetic and id generation only.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Order Types ────────────────────────────────────────────────────────────

// OrderType is how the customer receives the order.
type OrderType string

const (
	OrderDelivery OrderType = "Delivery"
	OrderPickUp   OrderType = "Pick Up"
)

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool {
	return t == OrderDelivery || t == OrderPickUp
}

// OrderStatus is the lifecycle state of a finalized order.
// Orders only exist once completed, so there is a single value today.
type OrderStatus string

const (
	StatusCompleted OrderStatus = "Completed"
)

// ─── Line Items ─────────────────────────────────────────────────────────────

// LineItem is one pending cart entry. Copied by value into an Order.
type LineItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// NewLineItem fills boundary defaults: a zero quantity means one unit.
func NewLineItem(name string, unitPrice decimal.Decimal, quantity int) LineItem {
	if quantity == 0 {
		quantity = 1
	}
	return LineItem{
		Name:      strings.TrimSpace(name),
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}
}

// Validate checks the item invariants: priced at zero or more, at least one unit.
func (li LineItem) Validate() error {
	if li.Name == "" {
		return ErrInvalidItem
	}
	if li.UnitPrice.IsNegative() || li.Quantity < 1 {
		return ErrInvalidItem
	}
	return nil
}

// LineTotal returns unitPrice × quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Equal compares two items by value.
func (li LineItem) Equal(other LineItem) bool {
	return li.Name == other.Name &&
		li.Quantity == other.Quantity &&
		li.UnitPrice.Equal(other.UnitPrice)
}

// ─── Orders ─────────────────────────────────────────────────────────────────

// Order is an immutable checkout record. Once appended to history it is
// never mutated; readers receive clones.
type Order struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	Discount        Points          `json:"discount"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	Status          OrderStatus     `json:"status"`
	OrderType       OrderType       `json:"order_type"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	Notes           string          `json:"notes"`
}

// Clone returns a copy that shares no storage with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]LineItem(nil), o.Items...)
	return c
}

// AddressOrNA returns the delivery address, or "N/A" when absent.
func (o Order) AddressOrNA() string {
	if o.DeliveryAddress == "" {
		return "N/A"
	}
	return o.DeliveryAddress
}

// CheckoutRequest carries the parameters of a checkout attempt.
type CheckoutRequest struct {
	OrderType       OrderType
	DeliveryAddress string
	PaymentMethod   PaymentMethod
	DiscountPoints  Points
	Notes           string
}

// NotesNone is stored when the customer leaves no notes.
const NotesNone = "None"

// ─── Reservations ───────────────────────────────────────────────────────────

// Reservation is a table booking made during the session.
type Reservation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM
	CreatedAt time.Time `json:"created_at"`
}

// ReservationRequest is the raw booking form.
type ReservationRequest struct {
	Name  string
	Email string
	Phone string
	Date  string
	Time  string
}

// ─── Utilities ──────────────────────────────────────────────────────────────

// NewID returns a time-ordered unique identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RoundMoney rounds to two decimal places, halves away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders a money amount with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
