package domain

import (
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ─── Boundary Parsers ───────────────────────────────────────────────────────
// Raw form strings are converted here, before anything reaches the ledger.

// ParsePoints parses a strictly positive whole number of points.
// Surrounding whitespace is ignored; signs, decimals and trailing text are not.
func ParsePoints(raw string) (Points, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, ErrInvalidPoints
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidPoints
	}
	return Points(n), nil
}

// ParseOrderType accepts the display names and common spellings.
func ParseOrderType(raw string) (OrderType, error) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "delivery":
		return OrderDelivery, nil
	case "pickup", "pick-up":
		return OrderPickUp, nil
	}
	return "", ErrInvalidOrderType
}

// ParsePaymentMethod accepts a catalog id ("1") or display name ("GCash").
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return PaymentNone, ErrMissingPaymentMethod
	}
	if n, err := strconv.Atoi(s); err == nil {
		m := PaymentMethod(n)
		if !m.Valid() {
			return PaymentNone, ErrMissingPaymentMethod
		}
		return m, nil
	}
	for _, opt := range PaymentMethods() {
		if strings.EqualFold(opt.Name, s) {
			return opt.ID, nil
		}
	}
	return PaymentNone, ErrMissingPaymentMethod
}

// ParseMoney parses a non-negative currency amount.
func ParseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidItem
	}
	return d, nil
}

// Reservation date and time layouts.
const (
	DateLayout = time.DateOnly
	TimeLayout = "15:04"
)

// ValidateReservation checks a booking form against today's date.
func ValidateReservation(req ReservationRequest, now time.Time) error {
	for _, f := range []string{req.Name, req.Email, req.Phone, req.Date, req.Time} {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidReservation
		}
	}
	if addr, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil || addr.Name != "" {
		return ErrInvalidReservation
	}
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(req.Date), now.Location())
	if err != nil {
		return ErrInvalidReservation
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return ErrInvalidReservation
	}
	if _, err := time.Parse(TimeLayout, strings.TrimSpace(req.Time)); err != nil {
		return ErrInvalidReservation
	}
	return nil
}
