package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/brewpoint/brewpoint/internal/app/ledger"
	"github.com/brewpoint/brewpoint/internal/domain"
)

// ─── quote ──────────────────────────────────────────────────────────────────
// Offline pricing: runs the checkout arithmetic without a ledger session.

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringArrayP("item", "i", nil, `Cart line as "name:price[:qty]" (repeatable)`)
	quoteCmd.Flags().StringP("type", "t", "delivery", "Order type: delivery or pickup")
	quoteCmd.Flags().StringP("points", "p", "0", "Points to spend as a discount")
	quoteCmd.Flags().Int64P("balance", "b", 10, "Points available to spend")
	quoteCmd.Flags().String("fee", "50.00", "Delivery fee")
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a cart without placing an order",
	Example: `  brewpoint quote -i "Latte:120.00:2" -t delivery -p 10
  brewpoint quote -i "Americano:95" -i "Croissant:85.50" -t pickup`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func runQuote(cmd *cobra.Command, args []string) error {
	lines, _ := cmd.Flags().GetStringArray("item")
	typ, _ := cmd.Flags().GetString("type")
	points, _ := cmd.Flags().GetString("points")
	balance, _ := cmd.Flags().GetInt64("balance")
	fee, _ := cmd.Flags().GetString("fee")

	return writeQuote(cmd.OutOrStdout(), quoteInput{
		Items:   lines,
		Type:    typ,
		Points:  points,
		Balance: balance,
		Fee:     fee,
	})
}

type quoteInput struct {
	Items   []string
	Type    string
	Points  string
	Balance int64
	Fee     string
}

func writeQuote(w io.Writer, in quoteInput) error {
	if len(in.Items) == 0 {
		return domain.ErrEmptyCart
	}
	items := make([]domain.LineItem, 0, len(in.Items))
	for _, line := range in.Items {
		it, err := parseItemFlag(line)
		if err != nil {
			return err
		}
		items = append(items, it)
	}

	orderType, err := domain.ParseOrderType(in.Type)
	if err != nil {
		return err
	}
	var discount domain.Points
	if p := strings.TrimSpace(in.Points); p != "" && p != "0" {
		if discount, err = domain.ParsePoints(p); err != nil {
			return err
		}
	}
	fee, err := decimal.NewFromString(in.Fee)
	if err != nil {
		return fmt.Errorf("fee: %w", err)
	}

	q, err := ledger.Price(items, orderType, fee, discount, domain.Points(in.Balance))
	if err != nil {
		return err
	}

	for _, it := range items {
		fmt.Fprintf(w, "  %-24s %3d x %10s\n", it.Name, it.Quantity, domain.FormatMoney(it.UnitPrice))
	}
	fmt.Fprintf(w, "%-32s %12s\n", "Subtotal", domain.FormatMoney(q.Subtotal))
	fmt.Fprintf(w, "%-32s %12s\n", "Delivery fee", domain.FormatMoney(q.DeliveryFee))
	fmt.Fprintf(w, "%-32s %12s\n", "Grand total", domain.FormatMoney(q.GrandTotal))
	fmt.Fprintf(w, "%-32s %12s\n", fmt.Sprintf("Discount (%d pts)", q.Discount), "-"+domain.FormatMoney(q.Discount.Money()))
	fmt.Fprintf(w, "%-32s %12s\n", "Final price", domain.FormatMoney(q.FinalPrice))
	return nil
}

// parseItemFlag parses "name:price[:qty]". The name may itself contain
// colons; price and quantity are taken from the right.
func parseItemFlag(line string) (domain.LineItem, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 2 {
		return domain.LineItem{}, fmt.Errorf("item %q: want name:price[:qty]: %w", line, domain.ErrInvalidItem)
	}

	qty := 0
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			qty = n
			parts = parts[:len(parts)-1]
		}
	}
	price, err := domain.ParseMoney(parts[len(parts)-1])
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("item %q: %w", line, err)
	}
	name := strings.Join(parts[:len(parts)-1], ":")

	it := domain.NewLineItem(name, price, qty)
	if err := it.Validate(); err != nil {
		return domain.LineItem{}, fmt.Errorf("item %q: %w", line, err)
	}
	return it, nil
}
