package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// CreateBill persists the bill row. Items are inserted separately with
// CreateBillItem.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bills (id, group_id, uploaded_by, total_amount, created_at) VALUES (?, ?, ?, ?, ?)",
		bill.ID, bill.GroupID, bill.UploadedBy, bill.TotalAmount, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// GetBill retrieves a bill by ID. Items are not loaded.
func (s *SQLiteStore) GetBill(ctx context.Context, id string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, uploaded_by, total_amount, created_at FROM bills WHERE id = ?",
		id,
	).Scan(&bill.ID, &bill.GroupID, &bill.UploadedBy, &bill.TotalAmount, &bill.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBillsByGroup returns the group's bills, newest first. Items are not loaded.
func (s *SQLiteStore) ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, uploaded_by, total_amount, created_at FROM bills
		 WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills by group: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		if err := rows.Scan(&bill.ID, &bill.GroupID, &bill.UploadedBy, &bill.TotalAmount, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// ListBillIDsByGroups returns the IDs of every bill in any of the groups.
func (s *SQLiteStore) ListBillIDsByGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	return s.queryIDs(ctx, "bill ids",
		"SELECT id FROM bills WHERE group_id IN ("+placeholders(len(groupIDs))+") ORDER BY created_at, id",
		toArgs(groupIDs)...,
	)
}

// DeleteBill removes the bill row only.
func (s *SQLiteStore) DeleteBill(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bill: %w", err)
	}
	return rowsAffected(res, "bills")
}

// DeleteBillsByGroup removes every bill row of the group.
func (s *SQLiteStore) DeleteBillsByGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bills: %w", err)
	}
	return rowsAffected(res, "bills")
}

// CreateBillItem inserts one item. Items keep their insertion order.
func (s *SQLiteStore) CreateBillItem(ctx context.Context, item *models.BillItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bill_items (id, bill_id, item_name, quantity, total_price, position)
		 VALUES (?, ?, ?, ?, ?, (SELECT COUNT(*) FROM bill_items WHERE bill_id = ?))`,
		item.ID, item.BillID, item.Name, item.Quantity, item.TotalPrice, item.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill item: %w", err)
	}
	return nil
}

// ListBillItems returns the bill's items in insertion order.
func (s *SQLiteStore) ListBillItems(ctx context.Context, billID string) ([]models.BillItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, bill_id, item_name, quantity, total_price FROM bill_items WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	var items []models.BillItem
	for rows.Next() {
		var item models.BillItem
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &item.Quantity, &item.TotalPrice); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bill items: %w", err)
	}
	return items, nil
}

// DeleteBillItemsByBills removes every item of the given bills.
func (s *SQLiteStore) DeleteBillItemsByBills(ctx context.Context, billIDs []string) (int64, error) {
	if len(billIDs) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM bill_items WHERE bill_id IN ("+placeholders(len(billIDs))+")",
		toArgs(billIDs)...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete bill items: %w", err)
	}
	return rowsAffected(res, "bill items")
}
