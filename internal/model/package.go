package model

import "time"

// ServicePackage is a catalog entry describing a vendor service at a
// fixed price.  Selecting a package overwrites the price and service
// type of whatever it is applied to (booking or invoice line item);
// package selection is deliberately destructive, not additive.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the package.
//  PriceCents  – package price in cents.
//  ServiceType – service the package covers.
//  CreatedAt   – creation timestamp.
type ServicePackage struct {
	ID          uint64    `json:"id"`           // service_packages.id
	Name        string    `json:"name"`         // service_packages.name
	PriceCents  int64     `json:"price_cents"`  // service_packages.price_cents
	ServiceType string    `json:"service_type"` // service_packages.service_type
	CreatedAt   time.Time `json:"created_at"`   // service_packages.created_at
}
