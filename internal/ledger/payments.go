package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// RecordPayment records money paid from one group member to another.
func (l *Ledger) RecordPayment(ctx context.Context, groupID, payerID, payeeID string, amount decimal.Decimal) (*models.PaymentTransaction, error) {
	const op = "RecordPayment"

	if !amount.IsPositive() {
		return nil, newError(KindInvalidInput, op, groupID, fmt.Errorf("amount must be positive, got %s", amount))
	}
	if payerID == payeeID {
		return nil, newError(KindInvalidInput, op, payerID, errors.New("payer and payee must differ"))
	}
	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}

	for _, id := range []string{payerID, payeeID} {
		ok, err := l.store.MemberExists(ctx, groupID, id)
		if err != nil {
			return nil, newError(KindUpstream, op, groupID, err)
		}
		if !ok {
			return nil, newError(KindNotFound, op, id, fmt.Errorf("user %s is not a member of group %s", id, groupID))
		}
	}

	p := &models.PaymentTransaction{
		GroupID: groupID,
		PayerID: payerID,
		PayeeID: payeeID,
		Amount:  amount.Round(2),
	}
	if err := l.store.CreatePayment(ctx, p); err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	return p, nil
}

// ListPayments returns a group's payments, newest first.
func (l *Ledger) ListPayments(ctx context.Context, groupID string) ([]models.PaymentTransaction, error) {
	const op = "ListPayments"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}
	payments, err := l.store.ListPayments(ctx, storage.PaymentFilter{GroupIDs: []string{groupID}})
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	return payments, nil
}
