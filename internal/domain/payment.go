package domain

// PaymentMethod identifies one of the fixed payment options.
// The zero value means no method was selected.
type PaymentMethod int

const (
	PaymentNone PaymentMethod = iota
	PaymentGCash
	PaymentCard
	PaymentMaya
	PaymentCashOnDelivery
	PaymentCash
)

var paymentNames = map[PaymentMethod]string{
	PaymentGCash:          "GCash",
	PaymentCard:           "Credit/Debit Card",
	PaymentMaya:           "Maya",
	PaymentCashOnDelivery: "Cash on Delivery",
	PaymentCash:           "Cash",
}

// Valid reports whether m is one of the catalog methods.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentNames[m]
	return ok
}

// String returns the display name, or "Unknown".
func (m PaymentMethod) String() string {
	if name, ok := paymentNames[m]; ok {
		return name
	}
	return "Unknown"
}

// PaymentOption is a catalog entry for selection lists.
type PaymentOption struct {
	ID   PaymentMethod `json:"id"`
	Name string        `json:"name"`
}

// PaymentMethods returns the catalog in display order.
func PaymentMethods() []PaymentOption {
	out := make([]PaymentOption, 0, len(paymentNames))
	for m := PaymentGCash; m <= PaymentCash; m++ {
		out = append(out, PaymentOption{ID: m, Name: m.String()})
	}
	return out
}
