package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Reserve records a table reservation. The date may not be in the past.
func (l *Ledger) Reserve(ctx context.Context, req domain.ReservationRequest) (domain.Reservation, error) {
	now := l.now()
	if err := domain.ValidateReservation(req, now); err != nil {
		return domain.Reservation{}, fmt.Errorf("reserve: %w", err)
	}

	r := domain.Reservation{
		ID:        l.newID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Date:      strings.TrimSpace(req.Date),
		Time:      strings.TrimSpace(req.Time),
		CreatedAt: now,
	}

	l.mu.Lock()
	l.reservations = append(l.reservations, r)
	l.mu.Unlock()

	l.logger.Info("reservation created", zap.String("reservation_id", r.ID), zap.String("date", r.Date), zap.String("time", r.Time))
	l.publish(ctx, domain.Event{Type: domain.EventReservationCreated, At: now, Reservation: &r})
	return r, nil
}

// Reservations returns all reservations, newest first.
func (l *Ledger) Reservations() []domain.Reservation {
	l.mu.RLock()
	out := append([]domain.Reservation(nil), l.reservations...)
	l.mu.RUnlock()

	slices.Reverse(out)
	return out
}
