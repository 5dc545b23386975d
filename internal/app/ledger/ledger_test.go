package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// recordingSink captures published events.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *recordingSink) Publish(_ context.Context, ev domain.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) count(t domain.EventType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

var testNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	var mu sync.Mutex
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return fmt.Sprintf("id-%04d", seq)
		}),
	}
	return New(DefaultConfig(), append(base, opts...)...)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func latte() domain.LineItem {
	return domain.LineItem{Name: "Latte", UnitPrice: dec("120.00"), Quantity: 2}
}

func deliveryReq(discount domain.Points) domain.CheckoutRequest {
	return domain.CheckoutRequest{
		OrderType:       domain.OrderDelivery,
		DeliveryAddress: "123 Main",
		PaymentMethod:   domain.PaymentGCash,
		DiscountPoints:  discount,
	}
}

func mustAdd(t *testing.T, l *Ledger, item domain.LineItem) int {
	t.Helper()
	idx, err := l.AddItem(context.Background(), item)
	if err != nil {
		t.Fatalf("AddItem(%+v) error: %v", item, err)
	}
	return idx
}

// ─── Config Tests ───────────────────────────────────────────────────────────

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.InitialBalance != 10 {
		t.Errorf("InitialBalance = %d, want 10", cfg.InitialBalance)
	}
	if !cfg.DeliveryFee.Equal(dec("50")) {
		t.Errorf("DeliveryFee = %s, want 50", cfg.DeliveryFee)
	}
}

func TestNew_InitialGrant(t *testing.T) {
	l := newTestLedger(t)
	if l.Balance() != 10 {
		t.Errorf("Balance() = %d, want 10", l.Balance())
	}
	hist := l.PointsHistory()
	if len(hist) != 1 || hist[0].Delta != 10 || hist[0].Description != domain.DescWelcomeBonus {
		t.Errorf("PointsHistory() = %+v, want one welcome grant", hist)
	}
	if _, ok := l.ReconcileBalance(); !ok {
		t.Error("ReconcileBalance() should hold on a fresh ledger")
	}
}

func TestNew_ZeroGrant(t *testing.T) {
	l := New(Config{InitialBalance: 0, DeliveryFee: dec("50")})
	if l.Balance() != 0 || len(l.PointsHistory()) != 0 {
		t.Error("zero initial balance should record no activity")
	}
}

// ─── Cart Tests ─────────────────────────────────────────────────────────────

func TestAddItem_AppendsWithoutMerging(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	idx := mustAdd(t, l, latte())
	if idx != 1 {
		t.Errorf("second AddItem index = %d, want 1", idx)
	}
	if n := len(l.Cart()); n != 2 {
		t.Errorf("len(Cart()) = %d, want 2", n)
	}
}

func TestAddItem_RejectsInvalid(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.AddItem(context.Background(), domain.LineItem{Name: "Bad", UnitPrice: dec("-1"), Quantity: 1})
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Errorf("AddItem() err = %v, want ErrInvalidItem", err)
	}
	if len(l.Cart()) != 0 {
		t.Error("invalid item should not reach the cart")
	}
}

func TestRemoveItem_RemovesOnlyOne(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	mustAdd(t, l, latte())

	if !l.RemoveItem(context.Background(), latte()) {
		t.Fatal("RemoveItem() = false, want true")
	}
	if n := len(l.Cart()); n != 1 {
		t.Errorf("len(Cart()) = %d after removing one of two identical items, want 1", n)
	}
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	other := domain.LineItem{Name: "Mocha", UnitPrice: dec("95"), Quantity: 1}
	if l.RemoveItem(context.Background(), other) {
		t.Error("RemoveItem() of absent item = true, want false")
	}
	if len(l.Cart()) != 1 {
		t.Error("cart changed on no-op removal")
	}
}

func TestRemoveAt(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	mocha := domain.LineItem{Name: "Mocha", UnitPrice: dec("95"), Quantity: 1}
	mustAdd(t, l, mocha)

	got, err := l.RemoveAt(context.Background(), 0)
	if err != nil {
		t.Fatalf("RemoveAt(0) error: %v", err)
	}
	if !got.Equal(latte()) {
		t.Errorf("RemoveAt(0) = %+v, want latte", got)
	}
	cart := l.Cart()
	if len(cart) != 1 || !cart[0].Equal(mocha) {
		t.Errorf("Cart() = %+v, want [mocha]", cart)
	}
	if _, err := l.RemoveAt(context.Background(), 5); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("RemoveAt(5) err = %v, want ErrNotFound", err)
	}
}

func TestCart_ReturnsCopy(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	c := l.Cart()
	c[0].Name = "tampered"
	if l.Cart()[0].Name != "Latte" {
		t.Error("Cart() exposes internal storage")
	}
}

func TestSubtotal_OrderIndependent(t *testing.T) {
	items := []domain.LineItem{
		{Name: "Latte", UnitPrice: dec("120.00"), Quantity: 2},
		{Name: "Croissant", UnitPrice: dec("85.50"), Quantity: 1},
		{Name: "Water", UnitPrice: dec("0"), Quantity: 3},
	}
	forward := Subtotal(items)
	reversed := Subtotal([]domain.LineItem{items[2], items[1], items[0]})
	if !forward.Equal(dec("325.50")) || !forward.Equal(reversed) {
		t.Errorf("Subtotal = %s / %s, want 325.50 both ways", forward, reversed)
	}
	if !Subtotal(nil).IsZero() {
		t.Error("Subtotal(nil) should be zero")
	}
}

func TestClearCart(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	l.ClearCart(context.Background())
	if len(l.Cart()) != 0 || !l.Subtotal().IsZero() {
		t.Error("ClearCart() left items behind")
	}
}

// ─── Pricing Tests ──────────────────────────────────────────────────────────

func TestDeliveryFee_Gating(t *testing.T) {
	fee := dec("50")
	tests := []struct {
		typ  domain.OrderType
		want string
	}{
		{domain.OrderDelivery, "50.00"},
		{domain.OrderPickUp, "0.00"},
		{domain.OrderType("Dine In"), "0.00"},
		{"", "0.00"},
	}
	for _, tt := range tests {
		got := domain.FormatMoney(DeliveryFee(tt.typ, fee))
		if got != tt.want {
			t.Errorf("DeliveryFee(%q) = %s, want %s", tt.typ, got, tt.want)
		}
	}
}

func TestPrice(t *testing.T) {
	items := []domain.LineItem{latte()}
	tests := []struct {
		name     string
		typ      domain.OrderType
		discount domain.Points
		balance  domain.Points
		final    string
		err      error
	}{
		{"delivery no discount", domain.OrderDelivery, 0, 10, "290.00", nil},
		{"delivery with discount", domain.OrderDelivery, 10, 10, "280.00", nil},
		{"pickup", domain.OrderPickUp, 0, 10, "240.00", nil},
		{"over balance", domain.OrderDelivery, 15, 10, "", domain.ErrInsufficientPoints},
		{"over grand total", domain.OrderPickUp, 241, 1000, "", domain.ErrInsufficientPoints},
		{"exactly grand total", domain.OrderPickUp, 240, 1000, "0.00", nil},
		{"negative", domain.OrderPickUp, -1, 10, "", domain.ErrInvalidPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(items, tt.typ, dec("50"), tt.discount, tt.balance)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("Price() err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Price() error: %v", err)
			}
			if got := domain.FormatMoney(q.FinalPrice); got != tt.final {
				t.Errorf("FinalPrice = %s, want %s", got, tt.final)
			}
			if !q.FinalPrice.Equal(q.GrandTotal.Sub(q.Discount.Money())) {
				t.Error("FinalPrice != GrandTotal - Discount")
			}
		})
	}
}

func TestPrice_RoundsHalfUp(t *testing.T) {
	items := []domain.LineItem{{Name: "Syrup shot", UnitPrice: dec("0.125"), Quantity: 1}}
	q, err := Price(items, domain.OrderPickUp, dec("50"), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := domain.FormatMoney(q.Subtotal); got != "0.13" {
		t.Errorf("Subtotal = %s, want 0.13", got)
	}
}

// ─── Checkout Tests ─────────────────────────────────────────────────────────

func TestCheckout_ScenarioA(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())

	order, err := l.Checkout(context.Background(), deliveryReq(0))
	if err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	got := map[string]string{
		"subtotal":     domain.FormatMoney(order.Subtotal),
		"delivery_fee": domain.FormatMoney(order.DeliveryFee),
		"grand_total":  domain.FormatMoney(order.GrandTotal),
		"final_price":  domain.FormatMoney(order.FinalPrice),
	}
	want := map[string]string{"subtotal": "240.00", "delivery_fee": "50.00", "grand_total": "290.00", "final_price": "290.00"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %s, want %s", k, got[k], v)
		}
	}
	if order.Status != domain.StatusCompleted {
		t.Errorf("Status = %q", order.Status)
	}
	if order.Notes != domain.NotesNone {
		t.Errorf("Notes = %q, want %q", order.Notes, domain.NotesNone)
	}
	if !order.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v", order.CreatedAt)
	}
	if l.Balance() != 10 || len(l.PointsHistory()) != 1 {
		t.Error("checkout without discount must not touch rewards")
	}
}

func TestCheckout_ScenarioB_Atomicity(t *testing.T) {
	sink := &recordingSink{}
	l := newTestLedger(t, WithSink(sink))
	mustAdd(t, l, latte())

	order, err := l.Checkout(context.Background(), deliveryReq(10))
	if err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	if got := domain.FormatMoney(order.FinalPrice); got != "280.00" {
		t.Errorf("FinalPrice = %s, want 280.00", got)
	}
	if len(l.Cart()) != 0 {
		t.Error("cart not cleared after checkout")
	}
	head := l.OrderList()[0]
	if head.ID != order.ID {
		t.Errorf("history head = %s, want %s", head.ID, order.ID)
	}
	if l.Balance() != 0 {
		t.Errorf("Balance() = %d, want 0", l.Balance())
	}
	hist := l.PointsHistory()
	if len(hist) != 2 {
		t.Fatalf("len(PointsHistory()) = %d, want 2", len(hist))
	}
	if hist[0].Delta != -10 || hist[0].Description != domain.DescDiscountApplied || hist[0].OrderID != order.ID {
		t.Errorf("newest activity = %+v", hist[0])
	}
	if hist[0].Date != "2026-10-16" {
		t.Errorf("activity Date = %q", hist[0].Date)
	}
	if _, ok := l.ReconcileBalance(); !ok {
		t.Error("balance no longer reconciles with activity")
	}
	if sink.count(domain.EventOrderCompleted) != 1 || sink.count(domain.EventPointsSpent) != 1 {
		t.Errorf("events = %+v", sink.events)
	}
}

func TestCheckout_ScenarioC_NoPartialMutation(t *testing.T) {
	sink := &recordingSink{}
	l := newTestLedger(t, WithSink(sink))
	mustAdd(t, l, latte())

	_, err := l.Checkout(context.Background(), deliveryReq(15))
	if !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Fatalf("Checkout() err = %v, want ErrInsufficientPoints", err)
	}
	if l.Balance() != 10 {
		t.Errorf("Balance() = %d, want 10", l.Balance())
	}
	if len(l.OrderList()) != 0 {
		t.Error("history changed on failed checkout")
	}
	if len(l.Cart()) != 1 {
		t.Error("cart changed on failed checkout")
	}
	if len(l.PointsHistory()) != 1 {
		t.Error("activity changed on failed checkout")
	}
	if sink.count(domain.EventCheckoutRejected) != 1 {
		t.Error("rejection not published")
	}
	if l.Stats().Rejected != 1 {
		t.Errorf("Stats().Rejected = %d", l.Stats().Rejected)
	}
}

func TestCheckout_ScenarioD_EmptyCart(t *testing.T) {
	l := newTestLedger(t)
	_, err := l.Checkout(context.Background(), deliveryReq(0))
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("Checkout() err = %v, want ErrEmptyCart", err)
	}
	if len(l.OrderList()) != 0 {
		t.Error("order created for empty cart")
	}
}

func TestCheckout_ScenarioE_PickUpNoAddress(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	order, err := l.Checkout(context.Background(), domain.CheckoutRequest{
		OrderType:     domain.OrderPickUp,
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	if !order.DeliveryFee.IsZero() {
		t.Errorf("DeliveryFee = %s, want 0.00", order.DeliveryFee)
	}
	if order.AddressOrNA() != "N/A" {
		t.Errorf("address = %q", order.AddressOrNA())
	}
}

func TestCheckout_ValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		req  domain.CheckoutRequest
		want error
	}{
		{"blank address", domain.CheckoutRequest{OrderType: domain.OrderDelivery, DeliveryAddress: "   ", PaymentMethod: domain.PaymentGCash}, domain.ErrMissingAddress},
		{"no payment", domain.CheckoutRequest{OrderType: domain.OrderPickUp}, domain.ErrMissingPaymentMethod},
		{"address before payment", domain.CheckoutRequest{OrderType: domain.OrderDelivery}, domain.ErrMissingAddress},
		{"unknown type", domain.CheckoutRequest{OrderType: "Drone", PaymentMethod: domain.PaymentGCash}, domain.ErrInvalidOrderType},
		{"over grand total", domain.CheckoutRequest{OrderType: domain.OrderPickUp, PaymentMethod: domain.PaymentGCash, DiscountPoints: 5}, domain.ErrInsufficientPoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)
			mustAdd(t, l, domain.LineItem{Name: "Candy", UnitPrice: dec("2.00"), Quantity: 1})
			_, err := l.Checkout(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Checkout() err = %v, want %v", err, tt.want)
			}
			if tt.want != domain.ErrInsufficientPoints && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Checkout() err = %v should be a validation error", err)
			}
		})
	}
}

func TestCheckout_OrderDoesNotAliasCart(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	order, err := l.Checkout(context.Background(), deliveryReq(0))
	if err != nil {
		t.Fatal(err)
	}
	order.Items[0].Name = "tampered"
	stored, err := l.Order(order.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Items[0].Name != "Latte" {
		t.Error("returned order aliases history storage")
	}
}

func TestCheckout_UniqueIDs(t *testing.T) {
	l := New(DefaultConfig())
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		mustAdd(t, l, latte())
		o, err := l.Checkout(context.Background(), domain.CheckoutRequest{OrderType: domain.OrderPickUp, PaymentMethod: domain.PaymentMaya})
		if err != nil {
			t.Fatal(err)
		}
		if seen[o.ID] {
			t.Fatalf("duplicate order id %s", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestCheckout_ConcurrentSerialized(t *testing.T) {
	l := New(Config{InitialBalance: 100, DeliveryFee: dec("50")})
	const workers = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := context.Background()
			if _, err := l.AddItem(ctx, latte()); err != nil {
				t.Error(err)
				return
			}
			if _, err := l.Checkout(ctx, deliveryReq(10)); err == nil {
				mu.Lock()
				completed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	spent := domain.Points(0)
	for _, a := range l.PointsHistory() {
		if a.Delta < 0 {
			spent -= a.Delta
		}
	}
	if l.Balance() < 0 {
		t.Fatalf("Balance() = %d, went negative", l.Balance())
	}
	if spent != domain.Points(completed)*10 {
		t.Errorf("spent %d points across %d orders", spent, completed)
	}
	if len(l.OrderList()) != completed {
		t.Errorf("history has %d orders, %d checkouts succeeded", len(l.OrderList()), completed)
	}
	if _, ok := l.ReconcileBalance(); !ok {
		t.Error("balance does not reconcile after concurrent checkouts")
	}
}

// ─── Rewards Tests ──────────────────────────────────────────────────────────

func TestQuoteDiscount(t *testing.T) {
	l := newTestLedger(t)
	got, err := l.QuoteDiscount(7)
	if err != nil || domain.FormatMoney(got) != "7.00" {
		t.Errorf("QuoteDiscount(7) = %s, %v", got, err)
	}
	if l.Balance() != 10 {
		t.Error("QuoteDiscount mutated the balance")
	}
	if _, err := l.QuoteDiscount(0); !errors.Is(err, domain.ErrInvalidPoints) {
		t.Errorf("QuoteDiscount(0) err = %v", err)
	}
	if _, err := l.QuoteDiscount(11); !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Errorf("QuoteDiscount(11) err = %v", err)
	}
}

func TestQuoteThenCheckout_NoDoubleSpend(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	if _, err := l.QuoteDiscount(10); err != nil {
		t.Fatal(err)
	}
	if _, err := l.QuoteDiscount(10); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Checkout(context.Background(), deliveryReq(10)); err != nil {
		t.Fatal(err)
	}
	if l.Balance() != 0 {
		t.Errorf("Balance() = %d, want 0 (previews must not spend)", l.Balance())
	}
}

func TestRedeem_IsStub(t *testing.T) {
	l := newTestLedger(t)
	res, err := l.Redeem(5)
	if err != nil {
		t.Fatalf("Redeem(5) error: %v", err)
	}
	if res.Applied || res.Note != domain.RedeemNotWired {
		t.Errorf("Redeem(5) = %+v", res)
	}
	if l.Balance() != 10 || len(l.PointsHistory()) != 1 {
		t.Error("Redeem must not change rewards state")
	}
	if _, err := l.Redeem(50); !errors.Is(err, domain.ErrInsufficientPoints) {
		t.Errorf("Redeem(50) err = %v", err)
	}
}

// ─── History Tests ──────────────────────────────────────────────────────────

func TestOrders_NewestFirstAndRestartable(t *testing.T) {
	l := newTestLedger(t)
	var ids []string
	for i := 0; i < 3; i++ {
		mustAdd(t, l, latte())
		o, err := l.Checkout(context.Background(), domain.CheckoutRequest{OrderType: domain.OrderPickUp, PaymentMethod: domain.PaymentGCash})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, o.ID)
	}

	seq := l.Orders()
	for pass := 0; pass < 2; pass++ {
		var got []string
		for o := range seq {
			got = append(got, o.ID)
		}
		if len(got) != 3 || got[0] != ids[2] || got[2] != ids[0] {
			t.Errorf("pass %d: order ids = %v, want newest first of %v", pass, got, ids)
		}
	}

	// Early exit.
	for o := range seq {
		if o.ID != ids[2] {
			t.Errorf("first yielded = %s", o.ID)
		}
		break
	}
}

func TestOrder_Lookup(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	o, err := l.Checkout(context.Background(), deliveryReq(0))
	if err != nil {
		t.Fatal(err)
	}
	got, err := l.Order(o.ID)
	if err != nil || got.ID != o.ID {
		t.Errorf("Order(%s) = %+v, %v", o.ID, got, err)
	}
	if _, err := l.Order("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Order(missing) err = %v, want ErrNotFound", err)
	}
}

// ─── Reservation Tests ──────────────────────────────────────────────────────

func TestReserve(t *testing.T) {
	sink := &recordingSink{}
	l := newTestLedger(t, WithSink(sink))
	ctx := context.Background()

	first, err := l.Reserve(ctx, domain.ReservationRequest{
		Name: "Ana", Email: "ana@example.com", Phone: "0917", Date: "2026-10-20", Time: "18:30",
	})
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	second, err := l.Reserve(ctx, domain.ReservationRequest{
		Name: "Ben", Email: "ben@example.com", Phone: "0918", Date: "2026-10-16", Time: "08:00",
	})
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}

	got := l.Reservations()
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Errorf("Reservations() = %+v, want newest first", got)
	}
	if sink.count(domain.EventReservationCreated) != 2 {
		t.Error("reservation events not published")
	}

	_, err = l.Reserve(ctx, domain.ReservationRequest{Name: "Cy", Email: "cy@example.com", Phone: "1", Date: "2026-10-01", Time: "10:00"})
	if !errors.Is(err, domain.ErrInvalidReservation) {
		t.Errorf("past reservation err = %v", err)
	}
}

// ─── Sink Tests ─────────────────────────────────────────────────────────────

func TestAddSink_ReceivesCartEvents(t *testing.T) {
	l := newTestLedger(t)
	var got []int
	l.AddSink(domain.EventSinkFunc(func(_ context.Context, ev domain.Event) {
		if ev.Type == domain.EventCartChanged {
			got = append(got, ev.CartItems)
		}
	}))

	ctx := context.Background()
	mustAdd(t, l, latte())
	mustAdd(t, l, latte())
	l.RemoveItem(ctx, latte())
	l.ClearCart(ctx)

	want := []int{1, 2, 1, 0}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("cart sizes = %v, want %v", got, want)
	}
}

// ─── Stats Tests ────────────────────────────────────────────────────────────

func TestStats(t *testing.T) {
	l := newTestLedger(t)
	mustAdd(t, l, latte())
	if _, err := l.Checkout(context.Background(), deliveryReq(4)); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, l, latte())

	s := l.Stats()
	if s.CartItems != 1 || s.Orders != 1 || s.Balance != 6 || s.PointsSpent != 4 {
		t.Errorf("Stats() = %+v", s)
	}
}
