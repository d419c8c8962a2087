package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// PartyRepo reads couples and vendors.  Both tables are owned by the
// marketplace; this service only validates references and looks up a
// vendor's connected gateway account for payment routing.
type PartyRepo struct {
	db *sql.DB
}

// NewPartyRepo returns a PartyRepo bound to the given database.
func NewPartyRepo(db *sql.DB) *PartyRepo { return &PartyRepo{db: db} }

// GetCouple returns a couple by id.  ErrNotFound when it does not exist.
func (r *PartyRepo) GetCouple(ctx context.Context, id uint64) (*model.Couple, error) {
	const q = `SELECT id, display_name FROM couples WHERE id = ?`
	var c model.Couple
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetVendor returns a vendor by id, including the connected gateway
// account when one is on file.  ErrNotFound when it does not exist.
func (r *PartyRepo) GetVendor(ctx context.Context, id uint64) (*model.Vendor, error) {
	const q = `SELECT id, display_name, gateway_account_id FROM vendors WHERE id = ?`
	var v model.Vendor
	var acct sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&v.ID, &v.DisplayName, &acct)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if acct.Valid {
		a := acct.String
		v.GatewayAccountID = &a
	}
	return &v, nil
}
