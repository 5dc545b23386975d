package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/brewpoint/brewpoint/internal/domain"
)

const maxBodyBytes = 1 << 20

// ─── Request Bodies ─────────────────────────────────────────────────────────

type addItemRequest struct {
	Name      string          `json:"name" validate:"required,max=120"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  *int            `json:"quantity" validate:"omitempty,gte=1"`
}

type pointsRequest struct {
	Points rawString `json:"points"`
}

type checkoutRequest struct {
	OrderType       string    `json:"order_type" validate:"required"`
	DeliveryAddress string    `json:"delivery_address" validate:"max=300"`
	PaymentMethod   rawString `json:"payment_method"`
	DiscountPoints  int64     `json:"discount_points" validate:"gte=0"`
	Notes           string    `json:"notes" validate:"max=500"`
}

type reservationRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,max=40"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"required,datetime=15:04"`
}

// rawString accepts a JSON string or a bare number and keeps its text, so
// boundary parsers see exactly what the client typed.
type rawString string

func (s *rawString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = rawString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = rawString(b)
	return nil
}

// ─── Cart ───────────────────────────────────────────────────────────────────

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items := s.ledger.Cart()
	writeJSON(w, http.StatusOK, cartView{
		Items:    newItemViews(items),
		Subtotal: domain.FormatMoney(s.ledger.Subtotal()),
	})
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !s.decode(w, r, &req) {
		return
	}
	qty := 0
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	item := domain.NewLineItem(req.Name, req.UnitPrice, qty)

	idx, err := s.ledger.AddItem(r.Context(), item)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"index": idx,
		"item":  newItemViews([]domain.LineItem{item})[0],
	})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "index must be an integer")
		return
	}
	removed, err := s.ledger.RemoveAt(r.Context(), idx)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"removed": newItemViews([]domain.LineItem{removed})[0],
	})
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	s.ledger.ClearCart(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ─── Rewards ────────────────────────────────────────────────────────────────

func (s *Server) handleGetRewards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, rewardsView{
		Balance:  s.ledger.Balance(),
		Activity: s.ledger.PointsHistory(),
	})
}

func (s *Server) handleQuoteDiscount(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !s.decode(w, r, &req) {
		return
	}
	points, err := domain.ParsePoints(string(req.Points))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	discount, err := s.ledger.QuoteDiscount(points)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"points":   points,
		"discount": domain.FormatMoney(discount),
	})
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	var req pointsRequest
	if !s.decode(w, r, &req) {
		return
	}
	points, err := domain.ParsePoints(string(req.Points))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	res, err := s.ledger.Redeem(points)
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Checkout & History ─────────────────────────────────────────────────────

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.PaymentMethods())
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	// Unparseable values are passed through so the ledger reports them in
	// its usual order (empty cart first).
	orderType, err := domain.ParseOrderType(req.OrderType)
	if err != nil {
		orderType = domain.OrderType(req.OrderType)
	}
	payment, err := domain.ParsePaymentMethod(string(req.PaymentMethod))
	if err != nil {
		payment = domain.PaymentNone
	}

	order, err := s.ledger.Checkout(r.Context(), domain.CheckoutRequest{
		OrderType:       orderType,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   payment,
		DiscountPoints:  domain.Points(req.DiscountPoints),
		Notes:           req.Notes,
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOrderView(order))
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	out := []orderView{}
	for o := range s.ledger.Orders() {
		out = append(out, newOrderView(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.ledger.Order(chi.URLParam(r, "id"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(order))
}

// ─── Reservations ───────────────────────────────────────────────────────────

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.ledger.Reserve(r.Context(), domain.ReservationRequest{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Date:  req.Date,
		Time:  req.Time,
	})
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	out := s.ledger.Reservations()
	if out == nil {
		out = []domain.Reservation{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ─── Decoding & Errors ──────────────────────────────────────────────────────

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. On failure it writes
// a 400 response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		respondValidationError(w, err)
		return false
	}
	return true
}

func respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		default:
			details = append(details, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error": map[string]interface{}{
			"message": "validation failed",
			"type":    "validation_error",
			"details": details,
		},
	})
}

// writeLedgerError maps ledger errors to HTTP status codes.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, domain.ErrInsufficientPoints):
		writeError(w, http.StatusConflict, "insufficient_points", err.Error())
	case errors.Is(err, domain.ErrEmptyCart):
		writeError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
