// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Swagat404/SettleUp/internal/models"
)

// ErrNotFound is returned (wrapped) when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// PaymentFilter selects payment transactions. Empty fields do not filter.
// GroupIDs is a set-membership filter; PayerID and PayeeID are equality
// filters.
type PaymentFilter struct {
	GroupIDs []string
	PayerID  string
	PayeeID  string
}

// Store defines the persistence gateway used by the ledger.
//
// Every method is a single statement against the backing store. The gateway
// offers read-your-writes within a process but no transactions spanning
// calls; the ledger sequences multi-step work itself.
//
// Insert methods generate the record ID and timestamp when unset and write
// them back into the passed record. Delete methods return the number of rows
// removed.
type Store interface {
	// CreateUser inserts a user. Email must be unique.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUser returns ErrNotFound if no user has the ID.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateFriendship inserts both directions of a friend link at once.
	CreateFriendship(ctx context.Context, userID, friendID string) error
	FriendshipExists(ctx context.Context, userID, friendID string) (bool, error)
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)

	CreateGroup(ctx context.Context, group *models.Group) error
	// GetGroup returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, id string) (*models.Group, error)
	GetGroupsByIDs(ctx context.Context, ids []string) ([]*models.Group, error)
	DeleteGroup(ctx context.Context, id string) (int64, error)

	AddMember(ctx context.Context, m *models.Membership) error
	MemberExists(ctx context.Context, groupID, userID string) (bool, error)
	ListMembers(ctx context.Context, groupID string) ([]*models.Member, error)
	// ListGroupIDsForUser returns the IDs of all groups the user belongs to.
	ListGroupIDsForUser(ctx context.Context, userID string) ([]string, error)
	DeleteMembersByGroup(ctx context.Context, groupID string) (int64, error)

	CreateBill(ctx context.Context, bill *models.Bill) error
	// GetBill returns the bill without items, or ErrNotFound.
	GetBill(ctx context.Context, id string) (*models.Bill, error)
	ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error)
	ListBillIDsByGroups(ctx context.Context, groupIDs []string) ([]string, error)
	DeleteBill(ctx context.Context, id string) (int64, error)
	DeleteBillsByGroup(ctx context.Context, groupID string) (int64, error)

	CreateBillItem(ctx context.Context, item *models.BillItem) error
	ListBillItems(ctx context.Context, billID string) ([]models.BillItem, error)
	DeleteBillItemsByBills(ctx context.Context, billIDs []string) (int64, error)

	CreateSplit(ctx context.Context, split *models.Split) error
	ListSplitsByBill(ctx context.Context, billID string) ([]models.Split, error)
	// ListSplitsForUser returns the user's splits among the given bills.
	ListSplitsForUser(ctx context.Context, billIDs []string, userID string) ([]models.Split, error)
	DeleteSplitsByBills(ctx context.Context, billIDs []string) (int64, error)

	CreatePayment(ctx context.Context, p *models.PaymentTransaction) error
	ListPayments(ctx context.Context, filter PaymentFilter) ([]models.PaymentTransaction, error)
	DeletePaymentsByGroup(ctx context.Context, groupID string) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
