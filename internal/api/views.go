package api

import (
	"time"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// Response views render money as fixed two-decimal strings and substitute
// display sentinels for absent values.

type itemView struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartView struct {
	Items    []itemView `json:"items"`
	Subtotal string     `json:"subtotal"`
}

type orderView struct {
	ID              string        `json:"id"`
	CreatedAt       time.Time     `json:"created_at"`
	Items           []itemView    `json:"items"`
	Subtotal        string        `json:"subtotal"`
	DeliveryFee     string        `json:"delivery_fee"`
	GrandTotal      string        `json:"grand_total"`
	Discount        domain.Points `json:"discount"`
	FinalPrice      string        `json:"final_price"`
	Status          string        `json:"status"`
	OrderType       string        `json:"order_type"`
	DeliveryAddress string        `json:"delivery_address"`
	PaymentMethod   string        `json:"payment_method"`
	PaymentMethodID int           `json:"payment_method_id"`
	Notes           string        `json:"notes"`
}

type rewardsView struct {
	Balance  domain.Points           `json:"balance"`
	Activity []domain.PointsActivity `json:"activity"`
}

func newItemViews(items []domain.LineItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{
			Name:      it.Name,
			UnitPrice: domain.FormatMoney(it.UnitPrice),
			Quantity:  it.Quantity,
			LineTotal: domain.FormatMoney(domain.RoundMoney(it.LineTotal())),
		})
	}
	return out
}

func newOrderView(o domain.Order) orderView {
	notes := o.Notes
	if notes == "" {
		notes = domain.NotesNone
	}
	return orderView{
		ID:              o.ID,
		CreatedAt:       o.CreatedAt,
		Items:           newItemViews(o.Items),
		Subtotal:        domain.FormatMoney(o.Subtotal),
		DeliveryFee:     domain.FormatMoney(o.DeliveryFee),
		GrandTotal:      domain.FormatMoney(o.GrandTotal),
		Discount:        o.Discount,
		FinalPrice:      domain.FormatMoney(o.FinalPrice),
		Status:          string(o.Status),
		OrderType:       string(o.OrderType),
		DeliveryAddress: o.AddressOrNA(),
		PaymentMethod:   o.PaymentMethod.String(),
		PaymentMethodID: int(o.PaymentMethod),
		Notes:           notes,
	}
}
