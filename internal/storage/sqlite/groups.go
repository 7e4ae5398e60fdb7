package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkhatri/splitkaro/internal/models"
)

// CreateGroup persists a new group, generating its ID and CreatedAt.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID. Returns (nil, nil) if it does not exist.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddMember inserts a membership row, generating JoinedAt if unset.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id, role, joined_at, left_at)
		 VALUES (?, ?, ?, ?, NULL)`,
		member.GroupID, member.UserID, string(member.Role), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

func scanMember(row *sql.Row) (*models.GroupMember, error) {
	member := &models.GroupMember{}
	var role string
	var leftAt sql.NullInt64
	err := row.Scan(&member.GroupID, &member.UserID, &role, &member.JoinedAt, &leftAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	member.Role = models.GroupRole(role)
	if leftAt.Valid {
		member.LeftAt = leftAt.Int64
	}
	return member, nil
}

// GetMember retrieves a membership row regardless of LeftAt.
// Returns (nil, nil) if the user was never a member.
func (s *SQLiteStore) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT group_id, user_id, role, joined_at, left_at
		 FROM group_members WHERE group_id = ? AND user_id = ?`,
		groupID, userID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get group member: %w", err)
	}
	return member, nil
}

// ListMembers retrieves all active members of a group in join order.
func (s *SQLiteStore) ListMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, user_id, role, joined_at, left_at
		 FROM group_members
		 WHERE group_id = ? AND left_at IS NULL
		 ORDER BY joined_at ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []*models.GroupMember
	for rows.Next() {
		member := &models.GroupMember{}
		var role string
		var leftAt sql.NullInt64
		if err := rows.Scan(&member.GroupID, &member.UserID, &role, &member.JoinedAt, &leftAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		member.Role = models.GroupRole(role)
		if leftAt.Valid {
			member.LeftAt = leftAt.Int64
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes a member's role.
func (s *SQLiteStore) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_members SET role = ? WHERE group_id = ? AND user_id = ?",
		string(role), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// MarkMemberLeft soft-deletes a membership by setting left_at.
func (s *SQLiteStore) MarkMemberLeft(ctx context.Context, groupID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE group_members SET left_at = ? WHERE group_id = ? AND user_id = ?",
		time.Now().Unix(), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark member left: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// MarkMemberRejoined reactivates a soft-deleted membership as a regular
// member with a fresh join time.
func (s *SQLiteStore) MarkMemberRejoined(ctx context.Context, groupID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE group_members SET left_at = NULL, role = ?, joined_at = ?
		 WHERE group_id = ? AND user_id = ?`,
		string(models.RoleMember), time.Now().Unix(), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to rejoin member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// CountAdmins counts the group's active admins.
func (s *SQLiteStore) CountAdmins(ctx context.Context, groupID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM group_members
		 WHERE group_id = ? AND role = ? AND left_at IS NULL`,
		groupID, string(models.RoleAdmin),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
