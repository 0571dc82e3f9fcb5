package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Swagat404/SettleUp/internal/models"
)

// IngestBill stores a parsed bill and its items in a group.
//
// The bill's total is the sum of the items' total prices. Items are
// inserted one at a time after the bill; if one fails the bill is left with
// the items written so far and a KindPartialFailure error lists their IDs.
func (l *Ledger) IngestBill(ctx context.Context, groupID, uploaderID string, items []models.ParsedItem) (*models.Bill, error) {
	const op = "IngestBill"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}
	if _, err := l.store.GetUser(ctx, uploaderID); err != nil {
		return nil, fromStore(op, uploaderID, err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}

	bill := &models.Bill{
		GroupID:     groupID,
		UploadedBy:  uploaderID,
		TotalAmount: total,
	}
	if err := l.store.CreateBill(ctx, bill); err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}

	bill.Items = make([]models.BillItem, 0, len(items))
	for i, parsed := range items {
		item := models.BillItem{
			BillID:     bill.ID,
			Name:       parsed.Name,
			Quantity:   parsed.Quantity,
			TotalPrice: parsed.TotalPrice,
		}
		if err := l.store.CreateBillItem(ctx, &item); err != nil {
			written := make([]string, 0, len(bill.Items)+1)
			written = append(written, bill.ID)
			for _, it := range bill.Items {
				written = append(written, it.ID)
			}
			return nil, &Error{
				Kind:     KindPartialFailure,
				Op:       op,
				Step:     fmt.Sprintf("insert_item[%d] %q", i, parsed.Name),
				EntityID: bill.ID,
				Written:  written,
				Cause:    err,
			}
		}
		bill.Items = append(bill.Items, item)
	}

	slog.Debug("Bill ingested", "bill_id", bill.ID, "items", len(bill.Items), "total", bill.TotalAmount)
	return bill, nil
}

// DeleteBill deletes a bill with its items and splits, forward-only.
func (l *Ledger) DeleteBill(ctx context.Context, billID string) error {
	const op = "DeleteBill"

	if _, err := l.store.GetBill(ctx, billID); err != nil {
		return fromStore(op, billID, err)
	}

	billIDs := []string{billID}
	f := runSteps(ctx, op, []step{
		{name: stepDeleteBillItems, run: func(ctx context.Context) error {
			_, err := l.store.DeleteBillItemsByBills(ctx, billIDs)
			return err
		}},
		{name: stepDeleteSplits, run: func(ctx context.Context) error {
			_, err := l.store.DeleteSplitsByBills(ctx, billIDs)
			return err
		}},
		{name: stepDeleteBill, run: func(ctx context.Context) error {
			_, err := l.store.DeleteBill(ctx, billID)
			return err
		}},
	})
	if f != nil {
		return forwardFailure(op, billID, f)
	}
	return nil
}

// GetBill returns a bill with its items.
func (l *Ledger) GetBill(ctx context.Context, billID string) (*models.Bill, error) {
	const op = "GetBill"

	bill, err := l.store.GetBill(ctx, billID)
	if err != nil {
		return nil, fromStore(op, billID, err)
	}
	items, err := l.store.ListBillItems(ctx, billID)
	if err != nil {
		return nil, newError(KindUpstream, op, billID, err)
	}
	bill.Items = items
	return bill, nil
}

// ListBills returns a group's bills, newest first, without items.
func (l *Ledger) ListBills(ctx context.Context, groupID string) ([]*models.Bill, error) {
	const op = "ListBills"

	if _, err := l.store.GetGroup(ctx, groupID); err != nil {
		return nil, fromStore(op, groupID, err)
	}
	bills, err := l.store.ListBillsByGroup(ctx, groupID)
	if err != nil {
		return nil, newError(KindUpstream, op, groupID, err)
	}
	return bills, nil
}
