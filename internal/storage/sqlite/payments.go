package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Swagat404/SettleUp/internal/models"
	"github.com/Swagat404/SettleUp/internal/storage"
)

// CreatePayment persists a new payment transaction.
func (s *SQLiteStore) CreatePayment(ctx context.Context, p *models.PaymentTransaction) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payment_transactions (id, group_id, payer_id, payee_id, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.GroupID, p.PayerID, p.PayeeID, p.Amount, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPayments returns the payments matching the filter, newest first.
// A filter with an empty (non-nil) GroupIDs set matches nothing.
func (s *SQLiteStore) ListPayments(ctx context.Context, filter storage.PaymentFilter) ([]models.PaymentTransaction, error) {
	var (
		where []string
		args  []any
	)
	if filter.GroupIDs != nil {
		if len(filter.GroupIDs) == 0 {
			return nil, nil
		}
		where = append(where, "group_id IN ("+placeholders(len(filter.GroupIDs))+")")
		args = append(args, toArgs(filter.GroupIDs)...)
	}
	if filter.PayerID != "" {
		where = append(where, "payer_id = ?")
		args = append(args, filter.PayerID)
	}
	if filter.PayeeID != "" {
		where = append(where, "payee_id = ?")
		args = append(args, filter.PayeeID)
	}

	query := "SELECT id, group_id, payer_id, payee_id, amount, created_at FROM payment_transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.PaymentTransaction
	for rows.Next() {
		var p models.PaymentTransaction
		if err := rows.Scan(&p.ID, &p.GroupID, &p.PayerID, &p.PayeeID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}

// DeletePaymentsByGroup removes every payment of the group.
func (s *SQLiteStore) DeletePaymentsByGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payment_transactions WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payments: %w", err)
	}
	return rowsAffected(res, "payments")
}
