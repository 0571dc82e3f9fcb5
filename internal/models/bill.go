package models

import "github.com/shopspring/decimal"

// Bill is a bill uploaded to a group.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// GroupID is the group that owns the bill.
	GroupID string

	// UploadedBy is the user ID of the uploader.
	UploadedBy string

	// TotalAmount is the sum of the items' total prices, computed once at
	// ingestion and stored for fast lookup.
	TotalAmount decimal.Decimal

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64

	// Items are the bill's line items. Only populated by reads that load
	// them explicitly.
	Items []BillItem
}

// BillItem is a single line item on a bill.
type BillItem struct {
	ID         string
	BillID     string
	Name       string
	Quantity   decimal.Decimal
	TotalPrice decimal.Decimal
}

// Split is one user's allocation for one bill.
type Split struct {
	BillID string
	UserID string

	// AmountDue is what this user owes toward the bill.
	AmountDue decimal.Decimal

	// AmountPaid is what this user fronted for the bill.
	AmountPaid decimal.Decimal
}
