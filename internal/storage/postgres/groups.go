package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nkhatri/splitkaro/internal/models"
)

// CreateGroup persists a new group, generating its ID and CreatedAt.
func (s *PostgresStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.pool.Exec(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES ($1, $2, $3)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID. Returns (nil, nil) if it does not exist.
func (s *PostgresStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = $1",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// AddMember inserts a membership row, generating JoinedAt if unset.
func (s *PostgresStore) AddMember(ctx context.Context, member *models.GroupMember) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id, role, joined_at, left_at)
		 VALUES ($1, $2, $3, $4, NULL)`,
		member.GroupID, member.UserID, string(member.Role), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group member: %w", err)
	}
	return nil
}

// GetMember retrieves a membership row regardless of LeftAt.
// Returns (nil, nil) if the user was never a member.
func (s *PostgresStore) GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member := &models.GroupMember{}
	var role string
	var leftAt *int64
	err := s.pool.QueryRow(ctx,
		`SELECT group_id, user_id, role, joined_at, left_at
		 FROM group_members WHERE group_id = $1 AND user_id = $2`,
		groupID, userID,
	).Scan(&member.GroupID, &member.UserID, &role, &member.JoinedAt, &leftAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group member: %w", err)
	}
	member.Role = models.GroupRole(role)
	if leftAt != nil {
		member.LeftAt = *leftAt
	}
	return member, nil
}

// ListMembers retrieves all active members of a group in join order.
func (s *PostgresStore) ListMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT group_id, user_id, role, joined_at, left_at
		 FROM group_members
		 WHERE group_id = $1 AND left_at IS NULL
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
		var leftAt *int64
		if err := rows.Scan(&member.GroupID, &member.UserID, &role, &member.JoinedAt, &leftAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		member.Role = models.GroupRole(role)
		if leftAt != nil {
			member.LeftAt = *leftAt
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// UpdateMemberRole changes a member's role.
func (s *PostgresStore) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE group_members SET role = $1 WHERE group_id = $2 AND user_id = $3",
		string(role), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// MarkMemberLeft soft-deletes a membership by setting left_at.
func (s *PostgresStore) MarkMemberLeft(ctx context.Context, groupID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE group_members SET left_at = $1 WHERE group_id = $2 AND user_id = $3",
		time.Now().Unix(), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark member left: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// MarkMemberRejoined reactivates a soft-deleted membership as a regular
// member with a fresh join time.
func (s *PostgresStore) MarkMemberRejoined(ctx context.Context, groupID, userID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE group_members SET left_at = NULL, role = $1, joined_at = $2
		 WHERE group_id = $3 AND user_id = $4`,
		string(models.RoleMember), time.Now().Unix(), groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to rejoin member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group member not found: %s/%s", groupID, userID)
	}
	return nil
}

// CountAdmins counts the group's active admins.
func (s *PostgresStore) CountAdmins(ctx context.Context, groupID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM group_members
		 WHERE group_id = $1 AND role = $2 AND left_at IS NULL`,
		groupID, string(models.RoleAdmin),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
