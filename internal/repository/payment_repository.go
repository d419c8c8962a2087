package repository

import (
	"context"
	"database/sql"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// PaymentRepo persists payment records.  Payments are append-only: rows
// are inserted once a gateway outcome is known and are never updated
// afterwards, so the payment table is a faithful history the balance
// recomputation can trust.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// Create inserts a payment row and populates the generated ID and
// DB-default timestamp on the given record.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const q = `INSERT INTO payments (invoice_id, booking_id, amount_cents, status, payment_type, to_platform, gateway_payment_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		p.InvoiceID, p.BookingID, p.AmountCents, string(p.Status), string(p.Type), p.ToPlatform, p.GatewayPaymentID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	const sel = `SELECT created_at FROM payments WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, p.ID).Scan(&p.CreatedAt)
}

// ListByInvoice returns every payment recorded against an invoice, in
// creation order.  The balance recomputation consumes this full set.
func (r *PaymentRepo) ListByInvoice(ctx context.Context, invoiceID uint64) ([]model.Payment, error) {
	const q = `SELECT id, invoice_id, booking_id, amount_cents, status, payment_type, to_platform, gateway_payment_id, created_at
	           FROM payments WHERE invoice_id = ? ORDER BY id`
	return r.list(ctx, q, invoiceID)
}

// ListByBooking returns every payment recorded against a booking.
func (r *PaymentRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Payment, error) {
	const q = `SELECT id, invoice_id, booking_id, amount_cents, status, payment_type, to_platform, gateway_payment_id, created_at
	           FROM payments WHERE booking_id = ? ORDER BY id`
	return r.list(ctx, q, bookingID)
}

func (r *PaymentRepo) list(ctx context.Context, q string, arg uint64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		var status, typ string
		var invoiceID, bookingID sql.NullInt64
		var gatewayID sql.NullString
		if err := rows.Scan(&p.ID, &invoiceID, &bookingID, &p.AmountCents, &status, &typ, &p.ToPlatform, &gatewayID, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Status = model.PaymentStatus(status)
		p.Type = model.PaymentType(typ)
		p.InvoiceID = nullableID(invoiceID)
		p.BookingID = nullableID(bookingID)
		if gatewayID.Valid {
			g := gatewayID.String
			p.GatewayPaymentID = &g
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
