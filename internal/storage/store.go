// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/nkhatri/splitkaro/internal/models"
)

// Store defines the persistence operations the services need. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL) without
// changing the service layer; tests run against a throwaway SQLite file.
//
// List methods scoped to a group return rows ordered by creation time
// ascending. The ledger engine's balance ordering contract depends on that.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns (nil, nil) when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsersByIDs returns a map of id to user; missing ids are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// Groups and memberships
	CreateGroup(ctx context.Context, group *models.Group) error
	// GetGroup returns (nil, nil) when the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	AddMember(ctx context.Context, member *models.GroupMember) error
	// GetMember returns the membership row regardless of LeftAt, or
	// (nil, nil) when the user was never a member.
	GetMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)
	ListMembers(ctx context.Context, groupID string) ([]*models.GroupMember, error)
	UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error
	// MarkMemberLeft soft-deletes the membership by setting LeftAt.
	MarkMemberLeft(ctx context.Context, groupID, userID string) error
	// MarkMemberRejoined reactivates a soft-deleted membership as a regular
	// member with a fresh join time.
	MarkMemberRejoined(ctx context.Context, groupID, userID string) error
	CountAdmins(ctx context.Context, groupID string) (int, error)

	// Expenses. CreateExpense persists the expense and its splits in one
	// transaction; a partial write would break the zero-sum invariant.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []*models.ExpenseSplit) error
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	ListSplitsByGroup(ctx context.Context, groupID string) ([]*models.ExpenseSplit, error)

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
