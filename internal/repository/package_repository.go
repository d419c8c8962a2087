package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DanielJKrikorian/admin-bremembered-sub001/internal/model"
)

// PackageRepo reads the service package catalog.  Packages are
// read-mostly; the console never writes them, it only resolves a
// selected package's price and service type so those values can
// overwrite whatever was entered by hand.
type PackageRepo struct {
	db *sql.DB
}

// NewPackageRepo returns a PackageRepo bound to the given database.
func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

// GetByID returns a single service package.  ErrNotFound is returned
// when no package with the given id exists.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*model.ServicePackage, error) {
	const q = `SELECT id, name, price_cents, service_type, created_at FROM service_packages WHERE id = ?`
	var p model.ServicePackage
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.ServiceType, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the full package catalog ordered by name.
func (r *PackageRepo) List(ctx context.Context) ([]model.ServicePackage, error) {
	const q = `SELECT id, name, price_cents, service_type, created_at FROM service_packages ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	packages := make([]model.ServicePackage, 0)
	for rows.Next() {
		var p model.ServicePackage
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.ServiceType, &p.CreatedAt); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, rows.Err()
}
