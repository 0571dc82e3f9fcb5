package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/calculator"
	"github.com/Swagat404/SettleUp/internal/models"
)

const stepInsertSplits = "insert_splits"

// SplitRequest describes how to split a bill.
type SplitRequest struct {
	BillID         string
	PayerID        string
	ParticipantIDs []string

	// Total overrides the bill's stored total when valid.
	Total decimal.NullDecimal
}

// SplitBill computes equal shares of a bill and stores one split row per
// participant, plus the payer's row.
//
// A bill is split once: KindAlreadyExists if it already has split rows.
// The payer and every participant must be members of the bill's group,
// otherwise KindNotFound names the first outsider. Nothing is written in
// either case.
//
// Every row is attempted even if an earlier one fails. If some rows fail
// the error lists the failed user IDs in Failed: KindPartialFailure when
// other rows were written, KindUpstream when none were.
func (l *Ledger) SplitBill(ctx context.Context, req SplitRequest) ([]models.Split, error) {
	const op = "SplitBill"

	bill, err := l.store.GetBill(ctx, req.BillID)
	if err != nil {
		return nil, fromStore(op, req.BillID, err)
	}

	total := bill.TotalAmount
	if req.Total.Valid {
		total = req.Total.Decimal
	}

	shares, err := calculator.ComputeSplits(req.PayerID, req.ParticipantIDs, total)
	if err != nil {
		return nil, newError(KindInvalidSplit, op, req.BillID, err)
	}

	existing, err := l.store.ListSplitsByBill(ctx, bill.ID)
	if err != nil {
		return nil, newError(KindUpstream, op, bill.ID, err)
	}
	if len(existing) > 0 {
		return nil, newError(KindAlreadyExists, op, bill.ID,
			fmt.Errorf("bill %s already has %d split rows", bill.ID, len(existing)))
	}

	for _, share := range shares {
		ok, err := l.store.MemberExists(ctx, bill.GroupID, share.UserID)
		if err != nil {
			return nil, newError(KindUpstream, op, bill.GroupID, err)
		}
		if !ok {
			return nil, newError(KindNotFound, op, share.UserID,
				fmt.Errorf("user %s is not a member of group %s", share.UserID, bill.GroupID))
		}
	}

	var (
		written []models.Split
		failed  []string
		errs    []error
	)
	for _, share := range shares {
		split := models.Split{
			BillID:     bill.ID,
			UserID:     share.UserID,
			AmountDue:  share.AmountDue,
			AmountPaid: share.AmountPaid,
		}
		if err := l.store.CreateSplit(ctx, &split); err != nil {
			failed = append(failed, share.UserID)
			errs = append(errs, fmt.Errorf("user %s: %w", share.UserID, err))
			continue
		}
		written = append(written, split)
	}

	if len(failed) == 0 {
		return written, nil
	}

	kind := KindPartialFailure
	if len(written) == 0 {
		kind = KindUpstream
	}
	writtenIDs := make([]string, len(written))
	for i, s := range written {
		writtenIDs[i] = s.UserID
	}
	return nil, &Error{
		Kind:     kind,
		Op:       op,
		Step:     stepInsertSplits,
		EntityID: bill.ID,
		Written:  writtenIDs,
		Failed:   failed,
		Cause:    errors.Join(errs...),
	}
}

// ListSplits returns a bill's splits in insertion order.
func (l *Ledger) ListSplits(ctx context.Context, billID string) ([]models.Split, error) {
	const op = "ListSplits"

	if _, err := l.store.GetBill(ctx, billID); err != nil {
		return nil, fromStore(op, billID, err)
	}
	splits, err := l.store.ListSplitsByBill(ctx, billID)
	if err != nil {
		return nil, newError(KindUpstream, op, billID, err)
	}
	return splits, nil
}
