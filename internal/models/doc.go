// Package models defines the core domain records for SettleUp.
//
// # Entities
//
//   - User, Friendship: people and their symmetric friend links
//   - Group, Membership: a group of users sharing bills
//   - Bill, BillItem: an ingested bill and its line items
//   - Split: one user's due/paid allocation for one bill
//   - PaymentTransaction: an out-of-band settlement between two group members
//
// # Money
//
// Every amount is a decimal.Decimal. Values are persisted as text so that
// what the ledger writes is exactly what it reads back.
//
// # Relationships
//
// Records reference each other by ID strings rather than pointers. Ownership
// follows the ledger's cascade order: items and splits belong to a bill;
// memberships, bills and payments belong to a group.
package models
