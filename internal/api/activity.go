package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// ─── Live Activity Feed ─────────────────────────────────────────────────────
// Completed orders, points spent and new reservations are pushed to
// connected clients as Server-Sent Events.

// ActivityEvent is the wire form of one live feed entry.
type ActivityEvent struct {
	Type          domain.EventType `json:"type"`
	Timestamp     int64            `json:"timestamp"` // Unix epoch
	OrderID       string           `json:"order_id,omitempty"`
	OrderType     domain.OrderType `json:"order_type,omitempty"`
	FinalPrice    string           `json:"final_price,omitempty"`
	Points        domain.Points    `json:"points,omitempty"`
	Balance       domain.Points    `json:"balance"`
	ReservationID string           `json:"reservation_id,omitempty"`
}

// ActivityHub fans ledger events out to SSE subscribers.
type ActivityHub struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewActivityHub creates an empty hub.
func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		clients: make(map[chan []byte]struct{}),
	}
}

// Publish implements domain.EventSink. Cart and rejection events are not
// part of the feed.
func (h *ActivityHub) Publish(_ context.Context, ev domain.Event) {
	out := ActivityEvent{Type: ev.Type, Timestamp: ev.At.Unix(), Balance: ev.Balance}
	switch ev.Type {
	case domain.EventOrderCompleted:
		if ev.Order == nil {
			return
		}
		out.OrderID = ev.Order.ID
		out.OrderType = ev.Order.OrderType
		out.FinalPrice = domain.FormatMoney(ev.Order.FinalPrice)
	case domain.EventPointsSpent:
		if ev.Activity == nil {
			return
		}
		out.OrderID = ev.Activity.OrderID
		out.Points = -ev.Activity.Delta
	case domain.EventReservationCreated:
		if ev.Reservation == nil {
			return
		}
		out.ReservationID = ev.Reservation.ID
	default:
		return
	}
	h.Broadcast(out)
}

// Broadcast sends an event to all connected clients.
func (h *ActivityHub) Broadcast(event ActivityEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- data:
		default:
			// Slow client: drop.
		}
	}
}

// Subscribe registers a new client. Returns the channel and an unsubscribe func.
func (h *ActivityHub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.clients, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// ClientCount returns the number of connected clients.
func (h *ActivityHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleActivitySSE serves the live feed.
// GET /api/activity/live
func (h *ActivityHub) HandleActivitySSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Subscribe before the headers go out so a client that has seen the
	// response cannot miss an event.
	ch, unsub := h.Subscribe()
	defer unsub()
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case data := <-ch:
			w.Write([]byte("data: "))
			w.Write(data)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
