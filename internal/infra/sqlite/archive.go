// Package sqlite archives completed orders as receipts in a SQLite file.
//
// The archive is write-only from the ledger's point of view: it is fed by
// order events and never read back into ledger state. Count and Get exist
// for operators and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/brewpoint/brewpoint/internal/domain"
)

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the receipt schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS receipts (
			id               TEXT PRIMARY KEY,
			created_at       TEXT NOT NULL,
			order_type       TEXT NOT NULL,
			delivery_address TEXT NOT NULL DEFAULT '',
			payment_method   INTEGER NOT NULL,
			notes            TEXT NOT NULL DEFAULT '',
			subtotal         TEXT NOT NULL,
			delivery_fee     TEXT NOT NULL,
			grand_total      TEXT NOT NULL,
			discount_points  INTEGER NOT NULL DEFAULT 0,
			final_price      TEXT NOT NULL,
			status           TEXT NOT NULL,
			archived_at      TEXT NOT NULL DEFAULT (datetime('now'))
		)`,

		`CREATE TABLE IF NOT EXISTS receipt_items (
			receipt_id TEXT NOT NULL REFERENCES receipts(id),
			position   INTEGER NOT NULL,
			name       TEXT NOT NULL,
			unit_price TEXT NOT NULL,
			quantity   INTEGER NOT NULL,
			PRIMARY KEY (receipt_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_receipts_created ON receipts(created_at)`,
	}
}

// ─── Archive ────────────────────────────────────────────────────────────────

// Option customizes an Archive.
type Option func(*Archive)

// WithLogger sets the structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Archive) {
		if l != nil {
			a.logger = l
		}
	}
}

// Archive is the receipt store.
type Archive struct {
	db       *sql.DB
	logger   *zap.Logger
	failures atomic.Int64
}

// Open opens (or creates) the archive file at path and applies migrations.
func Open(path string, opts ...Option) (*Archive, error) {
	if path == "" {
		return nil, errors.New("sqlite: archive path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	a := &Archive{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("archive")

	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate archive: %w", err)
		}
	}
	return a, nil
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Failures returns how many receipts could not be written.
func (a *Archive) Failures() int64 {
	return a.failures.Load()
}

// Publish implements domain.EventSink. Only completed orders are archived;
// write errors are logged and counted, never returned.
func (a *Archive) Publish(ctx context.Context, ev domain.Event) {
	if ev.Type != domain.EventOrderCompleted || ev.Order == nil {
		return
	}
	if err := a.Put(ctx, *ev.Order); err != nil {
		a.failures.Add(1)
		a.logger.Warn("archive receipt failed", zap.String("order_id", ev.Order.ID), zap.Error(err))
	}
}

// Put writes one receipt and its items in a single transaction.
func (a *Archive) Put(ctx context.Context, o domain.Order) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO receipts (id, created_at, order_type, delivery_address, payment_method, notes,
			subtotal, delivery_fee, grand_total, discount_points, final_price, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CreatedAt.UTC().Format(time.RFC3339Nano), string(o.OrderType), o.DeliveryAddress,
		int(o.PaymentMethod), o.Notes,
		domain.FormatMoney(o.Subtotal), domain.FormatMoney(o.DeliveryFee), domain.FormatMoney(o.GrandTotal),
		int64(o.Discount), domain.FormatMoney(o.FinalPrice), string(o.Status))
	if err != nil {
		return fmt.Errorf("insert receipt %s: %w", o.ID, err)
	}

	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO receipt_items (receipt_id, position, name, unit_price, quantity)
			VALUES (?, ?, ?, ?, ?)
		`, o.ID, i, it.Name, it.UnitPrice.String(), it.Quantity)
		if err != nil {
			return fmt.Errorf("insert receipt item %s/%d: %w", o.ID, i, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of archived receipts.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&n)
	return n, err
}

// Get reads a receipt back as an order.
func (a *Archive) Get(ctx context.Context, id string) (domain.Order, error) {
	var (
		o                                            domain.Order
		createdAt, orderType, status                 string
		subtotal, deliveryFee, grandTotal, finalText string
		payment                                      int
		discount                                     int64
	)
	err := a.db.QueryRowContext(ctx, `
		SELECT id, created_at, order_type, delivery_address, payment_method, notes,
			subtotal, delivery_fee, grand_total, discount_points, final_price, status
		FROM receipts WHERE id = ?
	`, id).Scan(&o.ID, &createdAt, &orderType, &o.DeliveryAddress, &payment, &o.Notes,
		&subtotal, &deliveryFee, &grandTotal, &discount, &finalText, &status)
	if err == sql.ErrNoRows {
		return domain.Order{}, fmt.Errorf("receipt %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, err
	}

	o.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	o.OrderType = domain.OrderType(orderType)
	o.Status = domain.OrderStatus(status)
	o.PaymentMethod = domain.PaymentMethod(payment)
	o.Discount = domain.Points(discount)
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&o.Subtotal, subtotal},
		{&o.DeliveryFee, deliveryFee},
		{&o.GrandTotal, grandTotal},
		{&o.FinalPrice, finalText},
	} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return domain.Order{}, fmt.Errorf("receipt %s: %w", id, err)
		}
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT name, unit_price, quantity FROM receipt_items
		WHERE receipt_id = ? ORDER BY position
	`, id)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.LineItem
		var price string
		if err := rows.Scan(&it.Name, &price, &it.Quantity); err != nil {
			return domain.Order{}, err
		}
		if it.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return domain.Order{}, fmt.Errorf("receipt %s: %w", id, err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}
