package models

import "github.com/shopspring/decimal"

// PaymentTransaction represents a payment between group members to clear
// debts. It is independent of any specific bill.
type PaymentTransaction struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// PayerID is the user who paid (debtor settling up).
	PayerID string

	// PayeeID is the user who received the payment.
	PayeeID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
