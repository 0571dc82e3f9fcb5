package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Swagat404/SettleUp/internal/models"
)

// CreateSplit inserts one split row.
func (s *SQLiteStore) CreateSplit(ctx context.Context, split *models.Split) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO splits (bill_id, user_id, amount_due, amount_paid, position)
		 VALUES (?, ?, ?, ?, (SELECT COUNT(*) FROM splits WHERE bill_id = ?))`,
		split.BillID, split.UserID, split.AmountDue, split.AmountPaid, split.BillID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}
	return nil
}

// ListSplitsByBill returns the bill's splits in insertion order.
func (s *SQLiteStore) ListSplitsByBill(ctx context.Context, billID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT bill_id, user_id, amount_due, amount_paid FROM splits WHERE bill_id = ? ORDER BY position",
		billID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()
	return scanSplits(rows)
}

// ListSplitsForUser returns the user's splits among the given bills.
func (s *SQLiteStore) ListSplitsForUser(ctx context.Context, billIDs []string, userID string) ([]models.Split, error) {
	if len(billIDs) == 0 {
		return nil, nil
	}

	args := append(toArgs(billIDs), userID)
	rows, err := s.db.QueryContext(ctx,
		`SELECT bill_id, user_id, amount_due, amount_paid FROM splits
		 WHERE bill_id IN (`+placeholders(len(billIDs))+`) AND user_id = ?
		 ORDER BY bill_id, position`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits for user: %w", err)
	}
	defer rows.Close()
	return scanSplits(rows)
}

// DeleteSplitsByBills removes every split of the given bills.
func (s *SQLiteStore) DeleteSplitsByBills(ctx context.Context, billIDs []string) (int64, error) {
	if len(billIDs) == 0 {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM splits WHERE bill_id IN ("+placeholders(len(billIDs))+")",
		toArgs(billIDs)...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete splits: %w", err)
	}
	return rowsAffected(res, "splits")
}

func scanSplits(rows *sql.Rows) ([]models.Split, error) {
	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(&split.BillID, &split.UserID, &split.AmountDue, &split.AmountPaid); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}
