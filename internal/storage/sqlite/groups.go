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

// CreateGroup persists a new group. Members are added separately.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, description, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, group.Name, group.Description, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_by, created_at FROM groups WHERE id = ?",
		id,
	).Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// GetGroupsByIDs retrieves the groups that exist among ids, oldest first.
func (s *SQLiteStore) GetGroupsByIDs(ctx context.Context, ids []string) ([]*models.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, created_by, created_at FROM groups
		 WHERE id IN (`+placeholders(len(ids))+`) ORDER BY created_at, id`,
		toArgs(ids)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// DeleteGroup removes the group row only.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group: %w", err)
	}
	return rowsAffected(res, "groups")
}

// AddMember inserts a membership row.
func (s *SQLiteStore) AddMember(ctx context.Context, m *models.Membership) error {
	if m.JoinedAt == 0 {
		m.JoinedAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, user_id, joined_at) VALUES (?, ?, ?)",
		m.GroupID, m.UserID, m.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// MemberExists reports whether the user belongs to the group.
func (s *SQLiteStore) MemberExists(ctx context.Context, groupID, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check group member: %w", err)
	}
	return true, nil
}

// ListMembers returns the group's members joined with their user records,
// in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.group_id, m.user_id, m.joined_at, u.name, u.email
		 FROM group_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.group_id = ?
		 ORDER BY m.joined_at, u.name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []*models.Member
	for rows.Next() {
		m := &models.Member{}
		if err := rows.Scan(&m.GroupID, &m.UserID, &m.JoinedAt, &m.Name, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// ListGroupIDsForUser returns the IDs of all groups the user belongs to.
func (s *SQLiteStore) ListGroupIDsForUser(ctx context.Context, userID string) ([]string, error) {
	return s.queryIDs(ctx, "group memberships",
		"SELECT group_id FROM group_members WHERE user_id = ? ORDER BY joined_at, group_id",
		userID,
	)
}

// DeleteMembersByGroup removes every membership of the group.
func (s *SQLiteStore) DeleteMembersByGroup(ctx context.Context, groupID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group members: %w", err)
	}
	return rowsAffected(res, "group members")
}
