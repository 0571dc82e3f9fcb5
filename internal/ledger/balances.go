package ledger

import (
	"context"

	"github.com/Swagat404/SettleUp/internal/calculator"
	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// SettlementPlan is a group's net positions and the transfers that would
// settle them.
type SettlementPlan struct {
	Positions []models.MemberPosition
	Transfers []models.DebtEdge
}

// GroupBalance returns the user's owed/lent position within one group.
func (l *Ledger) GroupBalance(ctx context.Context, groupID, userID string) (models.Balance, error) {
	const op = "GroupBalance"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return models.Balance{}, fromStore(op, groupID, err)
	}
	return l.netBalance(ctx, op, userID, []string{groupID})
}

// TotalBalance returns the user's owed/lent position across every group
// they belong to.
func (l *Ledger) TotalBalance(ctx context.Context, userID string) (models.Balance, error) {
	const op = "TotalBalance"

	if _, err := l.store.GetUser(ctx, userID); err != nil {
		return models.Balance{}, fromStore(op, userID, err)
	}
	groupIDs, err := l.store.ListGroupIDsForUser(ctx, userID)
	if err != nil {
		return models.Balance{}, newError(KindUpstream, op, userID, err)
	}
	return l.netBalance(ctx, op, userID, groupIDs)
}

// netBalance resolves the scope's bills, splits and payments and hands them
// to calculator.NetBalance. A scope with no bills, or no splits for the
// user, is a zero balance even if payments exist.
func (l *Ledger) netBalance(ctx context.Context, op, userID string, groupIDs []string) (models.Balance, error) {
	if len(groupIDs) == 0 {
		return models.Balance{}, nil
	}

	billIDs, err := l.store.ListBillIDsByGroups(ctx, groupIDs)
	if err != nil {
		return models.Balance{}, newError(KindUpstream, op, userID, err)
	}
	if len(billIDs) == 0 {
		return models.Balance{}, nil
	}

	splits, err := l.store.ListSplitsForUser(ctx, billIDs, userID)
	if err != nil {
		return models.Balance{}, newError(KindUpstream, op, userID, err)
	}
	if len(splits) == 0 {
		return models.Balance{}, nil
	}

	paidOut, err := l.store.ListPayments(ctx, storage.PaymentFilter{GroupIDs: groupIDs, PayerID: userID})
	if err != nil {
		return models.Balance{}, newError(KindUpstream, op, userID, err)
	}
	received, err := l.store.ListPayments(ctx, storage.PaymentFilter{GroupIDs: groupIDs, PayeeID: userID})
	if err != nil {
		return models.Balance{}, newError(KindUpstream, op, userID, err)
	}

	return calculator.NetBalance(splits, paidOut, received), nil
}

// GroupSettlementPlan computes every member's net position in a group and a
// short list of transfers that would settle the group.
func (l *Ledger) GroupSettlementPlan(ctx context.Context, groupID string) (*SettlementPlan, error) {
	const op = "GroupSettlementPlan"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}

	billIDs, err := l.store.ListBillIDsByGroups(ctx, []string{groupID})
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}

	var splits []models.Split
	for _, billID := range billIDs {
		billSplits, err := l.store.ListSplitsByBill(ctx, billID)
		if err != nil {
			return nil, newError(KindUpstream, op, billID, err)
		}
		splits = append(splits, billSplits...)
	}

	payments, err := l.store.ListPayments(ctx, storage.PaymentFilter{GroupIDs: []string{groupID}})
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}

	positions := calculator.MemberPositions(splits, payments)
	return &SettlementPlan{
		Positions: positions,
		Transfers: calculator.SimplifyDebts(positions),
	}, nil
}
