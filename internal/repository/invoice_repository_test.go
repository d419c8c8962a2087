package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

var invoiceColumns = []string{
	"id", "couple_id", "vendor_id", "discount_mode", "discount_amount_cents", "discount_percent",
	"deposit_percent", "total_amount_cents", "deposit_amount_cents", "remaining_balance_cents",
	"status", "payment_token", "paid_at", "created_at", "updated_at",
}

func TestInvoiceRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	now := time.Now()
	mock.ExpectExec("INSERT INTO invoices").
		WithArgs(uint64(1), uint64(2), "dollar", int64(3000), int64(0), int64(50),
			int64(17000), int64(8500), int64(17000), "draft", "tok_abc").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM invoices").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	inv := &model.Invoice{
		CoupleID:              1,
		VendorID:              2,
		DiscountMode:          model.DiscountDollar,
		DiscountAmountCents:   3000,
		DepositPercent:        50,
		TotalAmountCents:      17000,
		DepositAmountCents:    8500,
		RemainingBalanceCents: 17000,
		Status:                model.InvoiceDraft,
		PaymentToken:          "tok_abc",
	}
	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.ID != 42 {
		t.Errorf("id = %d, want 42", inv.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInvoiceRepoInsertLineItemsMultiRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	refID := uint64(9)
	items := []model.InvoiceLineItem{
		{InvoiceID: 42, Type: model.LineItemServicePackage, ReferenceID: &refID, CustomDescription: "Silver Video", UnitPriceCents: 120000, Quantity: 1},
		{InvoiceID: 42, Type: model.LineItemCustom, CustomDescription: "travel", UnitPriceCents: 5000, Quantity: 2},
	}

	mock.ExpectExec("INSERT INTO invoice_line_items").
		WithArgs(uint64(42), "service_package", &refID, "Silver Video", int64(120000), int64(1),
			uint64(42), "custom", nil, "travel", int64(5000), int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 2))

	if err := repo.InsertLineItems(context.Background(), items); err != nil {
		t.Fatalf("insert line items: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInvoiceRepoInsertLineItemsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	if err := repo.InsertLineItems(context.Background(), nil); err != nil {
		t.Fatalf("empty insert should be a no-op, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInvoiceRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id").
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(42, 1, 2, "dollar", 3000, 0, 50, 17000, 8500, 8500, "sent", "tok_abc", nil, now, now))

	inv, err := repo.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inv.Status != model.InvoiceSent {
		t.Errorf("status = %q, want sent", inv.Status)
	}
	if inv.PaidAt != nil {
		t.Error("paid_at should be nil for an unpaid invoice")
	}
	if inv.RemainingBalanceCents != 8500 {
		t.Errorf("remaining = %d, want 8500", inv.RemainingBalanceCents)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestInvoiceRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	_, err = repo.GetByID(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestInvoiceRepoGetByToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	now := time.Now()
	paidAt := now.Add(-time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE payment_token").
		WithArgs("tok_abc").
		WillReturnRows(sqlmock.NewRows(invoiceColumns).
			AddRow(42, 1, 2, "dollar", 3000, 0, 50, 17000, 8500, 0, "paid", "tok_abc", paidAt, now, now))

	inv, err := repo.GetByToken(context.Background(), "tok_abc")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if inv.Status != model.InvoicePaid {
		t.Errorf("status = %q, want paid", inv.Status)
	}
	if inv.PaidAt == nil {
		t.Error("paid_at should be set for a paid invoice")
	}
}

func TestInvoiceRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs("sent", uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateStatus(context.Background(), 404, model.InvoiceSent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestInvoiceRepoUpdateBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	repo := NewInvoiceRepo(db)

	paidAt := time.Now()
	mock.ExpectExec("UPDATE invoices SET remaining_balance_cents").
		WithArgs(int64(0), "paid", &paidAt, uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateBalance(context.Background(), 42, 0, model.InvoicePaid, &paidAt); err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
