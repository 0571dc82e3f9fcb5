package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Swagat404/SettleUp/internal/models"
)

// Step names reported in errors from group operations.
const (
	stepInsertGroup       = "insert_group"
	stepInsertMembership  = "insert_creator_membership"
	stepDeleteBillItems   = "delete_bill_items"
	stepDeleteSplits      = "delete_splits"
	stepDeletePayments    = "delete_payments"
	stepDeleteBills       = "delete_bills"
	stepDeleteMemberships = "delete_memberships"
	stepDeleteGroup       = "delete_group"
	stepDeleteBill        = "delete_bill"
)

// GroupDetails is a group together with its members.
type GroupDetails struct {
	Group   *models.Group
	Members []*models.Member
}

// GroupSummary is a group as listed for one of its members.
type GroupSummary struct {
	Group       *models.Group
	CreatorName string
}

// CreateGroup creates a group and makes the creator its first member.
//
// The two inserts are not atomic. If the membership insert fails, the group
// insert is reversed and a KindUpstream error names the failed step. If the
// reversal fails too, the result is KindPartialFailure with the orphaned
// group's ID in Written.
func (l *Ledger) CreateGroup(ctx context.Context, name, description, creatorID string) (*models.Group, error) {
	const op = "CreateGroup"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(KindInvalidInput, op, "", errors.New("group name is required"))
	}
	if _, err := l.store.GetUser(ctx, creatorID); err != nil {
		return nil, fromStore(op, creatorID, err)
	}

	group := &models.Group{
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
	}

	f := runSteps(ctx, op, []step{
		{
			name: stepInsertGroup,
			run:  func(ctx context.Context) error { return l.store.CreateGroup(ctx, group) },
			undo: func(ctx context.Context) error {
				_, err := l.store.DeleteGroup(ctx, group.ID)
				return err
			},
		},
		{
			name: stepInsertMembership,
			run: func(ctx context.Context) error {
				return l.store.AddMember(ctx, &models.Membership{GroupID: group.ID, UserID: creatorID})
			},
		},
	})
	if f == nil {
		return group, nil
	}

	e := &Error{Kind: KindUpstream, Op: op, Step: f.step, EntityID: group.ID, Cause: f.err}
	if !f.compensated() {
		e.Kind = KindPartialFailure
		e.Completed = f.completed
		e.Written = []string{group.ID}
		e.Cause = errors.Join(f.err, fmt.Errorf("compensate %s: %w", f.undoStep, f.undoErr))
	}
	return nil, e
}

// AddMember adds a user to a group.
func (l *Ledger) AddMember(ctx context.Context, groupID, userID string) (*models.Membership, error) {
	const op = "AddMember"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}
	if _, err := l.store.GetUser(ctx, userID); err != nil {
		return nil, fromStore(op, userID, err)
	}

	exists, err := l.store.MemberExists(ctx, groupID, userID)
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	if exists {
		return nil, newError(KindAlreadyExists, op, userID, errors.New("user is already a member"))
	}

	m := &models.Membership{GroupID: groupID, UserID: userID}
	if err := l.store.AddMember(ctx, m); err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	return m, nil
}

// DeleteGroup deletes a group and everything it owns. Only the creator may
// delete a group.
//
// Rows are removed in dependency order: bill items, splits, payments,
// bills, memberships, then the group. Deletion is forward-only: a failing
// step is reported with the steps already completed, and their deletions
// stay in place.
func (l *Ledger) DeleteGroup(ctx context.Context, groupID, requesterID string) error {
	const op = "DeleteGroup"

	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		return fromStore(op, groupID, err)
	}
	if group.CreatedBy != requesterID {
		return newError(KindUnauthorized, op, groupID, errors.New("only the group creator can delete the group"))
	}

	billIDs, err := l.store.ListBillIDsByGroups(ctx, []string{groupID})
	if err != nil {
		return newError(KindUpstream, op, groupID, err)
	}

	deleted := func(ctx context.Context, what string, fn func(context.Context) (int64, error)) error {
		n, err := fn(ctx)
		if err != nil {
			return err
		}
		slog.Debug("Deleted group rows", "group_id", groupID, "table", what, "count", n)
		return nil
	}

	f := runSteps(ctx, op, []step{
		{name: stepDeleteBillItems, run: func(ctx context.Context) error {
			return deleted(ctx, "bill_items", func(ctx context.Context) (int64, error) {
				return l.store.DeleteBillItemsByBills(ctx, billIDs)
			})
		}},
		{name: stepDeleteSplits, run: func(ctx context.Context) error {
			return deleted(ctx, "splits", func(ctx context.Context) (int64, error) {
				return l.store.DeleteSplitsByBills(ctx, billIDs)
			})
		}},
		{name: stepDeletePayments, run: func(ctx context.Context) error {
			return deleted(ctx, "payment_transactions", func(ctx context.Context) (int64, error) {
				return l.store.DeletePaymentsByGroup(ctx, groupID)
			})
		}},
		{name: stepDeleteBills, run: func(ctx context.Context) error {
			return deleted(ctx, "bills", func(ctx context.Context) (int64, error) {
				return l.store.DeleteBillsByGroup(ctx, groupID)
			})
		}},
		{name: stepDeleteMemberships, run: func(ctx context.Context) error {
			return deleted(ctx, "group_members", func(ctx context.Context) (int64, error) {
				return l.store.DeleteMembersByGroup(ctx, groupID)
			})
		}},
		{name: stepDeleteGroup, run: func(ctx context.Context) error {
			return deleted(ctx, "groups", func(ctx context.Context) (int64, error) {
				return l.store.DeleteGroup(ctx, groupID)
			})
		}},
	})
	if f != nil {
		return forwardFailure(op, groupID, f)
	}
	return nil
}

// GetGroup returns a group with its members.
func (l *Ledger) GetGroup(ctx context.Context, groupID string) (*GroupDetails, error) {
	const op = "GetGroup"

	group, err := l.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fromStore(op, groupID, err)
	}
	members, err := l.store.ListMembers(ctx, groupID)
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	return &GroupDetails{Group: group, Members: members}, nil
}

// ListGroups returns the groups the user belongs to, oldest first.
func (l *Ledger) ListGroups(ctx context.Context, userID string) ([]*GroupSummary, error) {
	const op = "ListGroups"

	if _, err := l.store.GetUser(ctx, userID); err != nil {
		return nil, fromStore(op, userID, err)
	}

	groupIDs, err := l.store.ListGroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, newError(KindUpstream, op, userID, err)
	}
	groups, err := l.store.GetGroupsByIDs(ctx, groupIDs)
	if err != nil {
		return nil, newError(KindUpstream, op, userID, err)
	}

	creatorIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		creatorIDs = append(creatorIDs, g.CreatedBy)
	}
	creators, err := l.store.GetUsersByIDs(ctx, creatorIDs)
	if err != nil {
		return nil, newError(KindUpstream, op, userID, err)
	}

	summaries := make([]*GroupSummary, 0, len(groups))
	for _, g := range groups {
		s := &GroupSummary{Group: g}
		if u, ok := creators[g.CreatedBy]; ok {
			s.CreatorName = u.Name
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// forwardFailure reports a failed forward-only sequence. Nothing has
// changed if the first step failed; otherwise the completed steps stay.
func forwardFailure(op, entityID string, f *stepFailure) *Error {
	kind := KindPartialFailure
	if len(f.completed) == 0 {
		kind = KindUpstream
	}
	return &Error{
		Kind:      kind,
		Op:        op,
		Step:      f.step,
		EntityID:  entityID,
		Completed: f.completed,
		Cause:     f.err,
	}
}
