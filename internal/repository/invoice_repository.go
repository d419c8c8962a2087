package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// InvoiceRepo provides CRUD operations for invoices and their line
// items.  Line items are written immediately after the invoice row in a
// single multi-row statement; both live in their own tables and the data
// API gives no transaction across them, so the service layer creates the
// invoice first and the line items second.
type InvoiceRepo struct {
	db *sql.DB
}

// NewInvoiceRepo returns an InvoiceRepo bound to the given database.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// Create inserts a new invoice and populates the generated ID and
// DB-default timestamps on the given record.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	const q = `INSERT INTO invoices
	           (couple_id, vendor_id, discount_mode, discount_amount_cents, discount_percent, deposit_percent,
	            total_amount_cents, deposit_amount_cents, remaining_balance_cents, status, payment_token)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		inv.CoupleID, inv.VendorID, string(inv.DiscountMode), inv.DiscountAmountCents, inv.DiscountPercent,
		inv.DepositPercent, inv.TotalAmountCents, inv.DepositAmountCents, inv.RemainingBalanceCents,
		string(inv.Status), inv.PaymentToken)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM invoices WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, inv.ID).Scan(&inv.CreatedAt, &inv.UpdatedAt)
}

// InsertLineItems writes all line items for an invoice in one
// statement.  The caller must set InvoiceID on each item.  Passing an
// empty slice has no effect and returns nil.
func (r *InvoiceRepo) InsertLineItems(ctx context.Context, items []model.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO invoice_line_items (invoice_id, type, reference_id, custom_description, unit_price_cents, quantity) VALUES `
	args := make([]interface{}, 0, len(items)*6)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, it.InvoiceID, string(it.Type), it.ReferenceID, it.CustomDescription, it.UnitPriceCents, it.Quantity)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByID returns a single invoice.  ErrNotFound is returned when no
// row with the given id exists.
func (r *InvoiceRepo) GetByID(ctx context.Context, id uint64) (*model.Invoice, error) {
	const q = `SELECT id, couple_id, vendor_id, discount_mode, discount_amount_cents, discount_percent, deposit_percent,
	                  total_amount_cents, deposit_amount_cents, remaining_balance_cents, status, payment_token, paid_at,
	                  created_at, updated_at
	           FROM invoices WHERE id = ?`
	return r.scanInvoice(r.db.QueryRowContext(ctx, q, id))
}

// GetByToken returns the invoice carrying the given shareable payment
// token.  ErrNotFound is returned when no invoice has that token.
func (r *InvoiceRepo) GetByToken(ctx context.Context, token string) (*model.Invoice, error) {
	const q = `SELECT id, couple_id, vendor_id, discount_mode, discount_amount_cents, discount_percent, deposit_percent,
	                  total_amount_cents, deposit_amount_cents, remaining_balance_cents, status, payment_token, paid_at,
	                  created_at, updated_at
	           FROM invoices WHERE payment_token = ? LIMIT 1`
	return r.scanInvoice(r.db.QueryRowContext(ctx, q, token))
}

func (r *InvoiceRepo) scanInvoice(row *sql.Row) (*model.Invoice, error) {
	var inv model.Invoice
	var mode, status string
	var paidAt sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.CoupleID, &inv.VendorID, &mode, &inv.DiscountAmountCents, &inv.DiscountPercent,
		&inv.DepositPercent, &inv.TotalAmountCents, &inv.DepositAmountCents, &inv.RemainingBalanceCents,
		&status, &inv.PaymentToken, &paidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	inv.DiscountMode = model.DiscountMode(mode)
	inv.Status = model.InvoiceStatus(status)
	if paidAt.Valid {
		t := paidAt.Time
		inv.PaidAt = &t
	}
	return &inv, nil
}

// ListLineItems returns all line items for an invoice in insertion
// order.  Order is irrelevant to the totals but deterministic output
// keeps display stable.
func (r *InvoiceRepo) ListLineItems(ctx context.Context, invoiceID uint64) ([]model.InvoiceLineItem, error) {
	const q = `SELECT id, invoice_id, type, reference_id, custom_description, unit_price_cents, quantity, created_at
	           FROM invoice_line_items WHERE invoice_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.InvoiceLineItem, 0)
	for rows.Next() {
		var it model.InvoiceLineItem
		var typ string
		var refID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.InvoiceID, &typ, &refID, &it.CustomDescription, &it.UnitPriceCents, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.Type = model.LineItemType(typ)
		it.ReferenceID = nullableID(refID)
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus moves an invoice to a new lifecycle status.  ErrNotFound
// is returned when the invoice does not exist.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, id uint64, status model.InvoiceStatus) error {
	const q = `UPDATE invoices SET status = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateBalance writes a freshly recomputed remaining balance, and when
// the balance has reached zero, flips the invoice to paid and stamps
// paid_at.  The balance is always a full recomputation from the payment
// set, so concurrent writers converge on the same value (last writer
// wins on an identical derivation).
func (r *InvoiceRepo) UpdateBalance(ctx context.Context, id uint64, remaining int64, status model.InvoiceStatus, paidAt *time.Time) error {
	const q = `UPDATE invoices SET remaining_balance_cents = ?, status = ?, paid_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, remaining, string(status), paidAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
