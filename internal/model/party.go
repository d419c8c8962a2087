package model

// Couple and Vendor are reference entities owned by the marketplace data
// store.  The console only ever reads them for display and validation;
// it never creates or mutates rows in either table.

// Couple identifies the pair a booking or invoice is for.
type Couple struct {
	ID          uint64 `json:"id"`           // couples.id
	DisplayName string `json:"display_name"` // couples.display_name
}

// Vendor identifies a marketplace vendor.  GatewayAccountID, when set,
// is the vendor's connected account at the payment gateway; charges for
// the vendor are routed there instead of the platform account.
type Vendor struct {
	ID               uint64  `json:"id"`                 // vendors.id
	DisplayName      string  `json:"display_name"`       // vendors.display_name
	GatewayAccountID *string `json:"gateway_account_id"` // vendors.gateway_account_id (nullable)
}
