package models

import "github.com/shopspring/decimal"

// Balance is a user's net position over a scope of bills and payments.
// Negative values are meaningful (overpayment) and are never clamped.
type Balance struct {
	// Owed is what the user still owes: splits due minus payments made.
	Owed decimal.Decimal

	// Lent is what the user is still owed: splits paid minus payments received.
	Lent decimal.Decimal
}

// MemberPosition is one member's net position within a group.
// Positive means the member is owed money, negative means they owe.
type MemberPosition struct {
	UserID string
	Net    decimal.Decimal
}

// DebtEdge represents a suggested payment from one member to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}
