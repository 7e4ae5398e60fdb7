package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nkhatri/splitkaro/internal/models"
	"github.com/nkhatri/splitkaro/internal/storage"
	"github.com/nkhatri/splitkaro/internal/storage/sqlite"
)

// newTestStore creates a throwaway SQLite store in a temp directory.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitkaro-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// seedUser creates a user with a fixed password hash; tests that do not
// exercise login never check it.
func seedUser(t *testing.T, store storage.Store, email, displayName string) *models.User {
	t.Helper()

	user := models.NewUser(email, displayName, "not-a-real-hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}

// seedGroup creates a group with the first user as admin and the rest as
// regular members.
func seedGroup(t *testing.T, store storage.Store, name string, users ...*models.User) *models.Group {
	t.Helper()

	ctx := context.Background()
	group := &models.Group{Name: name}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("Failed to seed group %s: %v", name, err)
	}
	for i, user := range users {
		role := models.RoleMember
		if i == 0 {
			role = models.RoleAdmin
		}
		member := &models.GroupMember{GroupID: group.ID, UserID: user.ID, Role: role}
		if err := store.AddMember(ctx, member); err != nil {
			t.Fatalf("Failed to seed member %s: %v", user.Email, err)
		}
	}
	return group
}
