package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nkhatri/splitkaro/internal/models"
	"github.com/nkhatri/splitkaro/internal/storage"
)

// GroupService handles group creation and membership administration.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// activeMember fetches a membership and fails with NOT_GROUP_MEMBER unless it
// exists and has not ended.
func activeMember(ctx context.Context, store storage.Store, groupID, userID string) (*models.GroupMember, error) {
	member, err := store.GetMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.Active() {
		return nil, &Error{Code: CodeNotGroupMember, Detail: userID}
	}
	return member, nil
}

// requireAdmin fails with NOT_GROUP_MEMBER or NOT_GROUP_ADMIN unless the user
// is an active admin of the group.
func requireAdmin(ctx context.Context, store storage.Store, groupID, userID string) error {
	member, err := activeMember(ctx, store, groupID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleAdmin {
		return &Error{Code: CodeNotGroupAdmin, Detail: userID}
	}
	return nil
}

// CreateGroup creates a group and adds the creator as its first admin.
func (s *GroupService) CreateGroup(ctx context.Context, creatorUserID, name string) (*models.Group, error) {
	group := &models.Group{Name: name}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	member := &models.GroupMember{
		GroupID: group.ID,
		UserID:  creatorUserID,
		Role:    models.RoleAdmin,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add creator to group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "creator", creatorUserID)
	return group, nil
}

// GetGroup returns a group the caller is an active member of.
func (s *GroupService) GetGroup(ctx context.Context, userID, groupID string) (*models.Group, error) {
	if _, err := activeMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, &Error{Code: CodeGroupNotFound, Detail: groupID}
	}
	return group, nil
}

// AddMember adds a user (by email) to the group. Only admins may add
// members; a user who previously left can be re-added.
func (s *GroupService) AddMember(ctx context.Context, adminUserID, groupID, email string) (*models.GroupMember, error) {
	if err := requireAdmin(ctx, s.store, groupID, adminUserID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &Error{Code: CodeUserNotFound, Detail: email}
	}

	existing, err := s.store.GetMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing.Active() {
		return nil, &Error{Code: CodeUserAlreadyMember, Detail: email}
	}

	member := &models.GroupMember{
		GroupID: groupID,
		UserID:  user.ID,
		Role:    models.RoleMember,
	}
	if existing != nil {
		// Rejoining: clear the old soft delete instead of inserting.
		if err := s.store.MarkMemberRejoined(ctx, groupID, user.ID); err != nil {
			return nil, fmt.Errorf("failed to rejoin member: %w", err)
		}
	} else if err := s.store.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	slog.Info("Member added", "group_id", groupID, "user_id", user.ID, "added_by", adminUserID)
	return member, nil
}

// PromoteToAdmin makes an existing member (by email) an admin. Promoting an
// admin again is a no-op.
func (s *GroupService) PromoteToAdmin(ctx context.Context, adminUserID, groupID, email string) (*models.GroupMember, error) {
	if err := requireAdmin(ctx, s.store, groupID, adminUserID); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, &Error{Code: CodeUserNotFound, Detail: email}
	}

	member, err := s.store.GetMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.Active() {
		return nil, &Error{Code: CodeUserNotMember, Detail: email}
	}
	if member.Role == models.RoleAdmin {
		return member, nil
	}

	if err := s.store.UpdateMemberRole(ctx, groupID, user.ID, models.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to promote member: %w", err)
	}
	member.Role = models.RoleAdmin

	slog.Info("Member promoted", "group_id", groupID, "user_id", user.ID, "promoted_by", adminUserID)
	return member, nil
}

// RemoveMember removes a member (by email) from the group. The last
// remaining admin cannot be removed.
func (s *GroupService) RemoveMember(ctx context.Context, adminUserID, groupID, email string) error {
	if err := requireAdmin(ctx, s.store, groupID, adminUserID); err != nil {
		return err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return &Error{Code: CodeUserNotFound, Detail: email}
	}

	member, err := s.store.GetMember(ctx, groupID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.Active() {
		return &Error{Code: CodeUserNotMember, Detail: email}
	}

	if member.Role == models.RoleAdmin {
		admins, err := s.store.CountAdmins(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return &Error{Code: CodeLastAdminRemove, Detail: email}
		}
	}

	if err := s.store.MarkMemberLeft(ctx, groupID, user.ID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", user.ID, "removed_by", adminUserID)
	return nil
}

// LeaveGroup removes the caller from the group. The last remaining admin
// cannot leave.
func (s *GroupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	member, err := activeMember(ctx, s.store, groupID, userID)
	if err != nil {
		return err
	}

	if member.Role == models.RoleAdmin {
		admins, err := s.store.CountAdmins(ctx, groupID)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return &Error{Code: CodeLastAdminLeave, Detail: userID}
		}
	}

	if err := s.store.MarkMemberLeft(ctx, groupID, userID); err != nil {
		return fmt.Errorf("failed to leave group: %w", err)
	}

	slog.Info("Member left group", "group_id", groupID, "user_id", userID)
	return nil
}
