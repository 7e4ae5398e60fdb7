package service

import (
	"context"
	"testing"

	"github.com/nkhatri/splitkaro/internal/models"
)

func TestCreateGroupAddsCreatorAsAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")

	group, err := svc.CreateGroup(ctx, alice.ID, "Roommates")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Fatal("expected group ID to be generated")
	}

	member, err := store.GetMember(ctx, group.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetMember failed: %v", err)
	}
	if !member.Active() {
		t.Fatal("expected creator to be an active member")
	}
	if member.Role != models.RoleAdmin {
		t.Errorf("creator role = %s, want %s", member.Role, models.RoleAdmin)
	}
}

func TestAddMember(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	carol := seedUser(t, store, "carol@example.com", "Carol")
	group := seedGroup(t, store, "Trip", alice, bob)

	t.Run("admin adds a new member", func(t *testing.T) {
		member, err := svc.AddMember(ctx, alice.ID, group.ID, carol.Email)
		if err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if member.Role != models.RoleMember {
			t.Errorf("new member role = %s, want %s", member.Role, models.RoleMember)
		}
	})

	t.Run("non-admin cannot add", func(t *testing.T) {
		_, err := svc.AddMember(ctx, bob.ID, group.ID, "dave@example.com")
		if got := CodeOf(err); got != CodeNotGroupAdmin {
			t.Errorf("code = %q, want %q", got, CodeNotGroupAdmin)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.AddMember(ctx, alice.ID, group.ID, "nobody@example.com")
		if got := CodeOf(err); got != CodeUserNotFound {
			t.Errorf("code = %q, want %q", got, CodeUserNotFound)
		}
	})

	t.Run("already a member", func(t *testing.T) {
		_, err := svc.AddMember(ctx, alice.ID, group.ID, bob.Email)
		if got := CodeOf(err); got != CodeUserAlreadyMember {
			t.Errorf("code = %q, want %q", got, CodeUserAlreadyMember)
		}
	})

	t.Run("re-add after leaving reactivates membership", func(t *testing.T) {
		if err := svc.RemoveMember(ctx, alice.ID, group.ID, carol.Email); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if _, err := svc.AddMember(ctx, alice.ID, group.ID, carol.Email); err != nil {
			t.Fatalf("re-AddMember failed: %v", err)
		}
		member, err := store.GetMember(ctx, group.ID, carol.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if !member.Active() {
			t.Fatal("expected rejoined member to be active")
		}
		if member.Role != models.RoleMember {
			t.Errorf("rejoined role = %s, want %s", member.Role, models.RoleMember)
		}
	})
}

func TestPromoteToAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	group := seedGroup(t, store, "Flat", alice, bob)

	member, err := svc.PromoteToAdmin(ctx, alice.ID, group.ID, bob.Email)
	if err != nil {
		t.Fatalf("PromoteToAdmin failed: %v", err)
	}
	if member.Role != models.RoleAdmin {
		t.Errorf("role = %s, want %s", member.Role, models.RoleAdmin)
	}

	// Promoting an admin again is a no-op, not an error.
	if _, err := svc.PromoteToAdmin(ctx, alice.ID, group.ID, bob.Email); err != nil {
		t.Errorf("second PromoteToAdmin failed: %v", err)
	}
}

func TestRemoveMemberLastAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	group := seedGroup(t, store, "Flat", alice, bob)

	err := svc.RemoveMember(ctx, alice.ID, group.ID, alice.Email)
	if got := CodeOf(err); got != CodeLastAdminRemove {
		t.Errorf("code = %q, want %q", got, CodeLastAdminRemove)
	}

	// With a second admin the removal goes through.
	if _, err := svc.PromoteToAdmin(ctx, alice.ID, group.ID, bob.Email); err != nil {
		t.Fatalf("PromoteToAdmin failed: %v", err)
	}
	if err := svc.RemoveMember(ctx, bob.ID, group.ID, alice.Email); err != nil {
		t.Errorf("RemoveMember failed: %v", err)
	}
}

func TestLeaveGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	alice := seedUser(t, store, "alice@example.com", "Alice")
	bob := seedUser(t, store, "bob@example.com", "Bob")
	group := seedGroup(t, store, "Flat", alice, bob)

	t.Run("last admin cannot leave", func(t *testing.T) {
		err := svc.LeaveGroup(ctx, alice.ID, group.ID)
		if got := CodeOf(err); got != CodeLastAdminLeave {
			t.Errorf("code = %q, want %q", got, CodeLastAdminLeave)
		}
	})

	t.Run("regular member leaves", func(t *testing.T) {
		if err := svc.LeaveGroup(ctx, bob.ID, group.ID); err != nil {
			t.Fatalf("LeaveGroup failed: %v", err)
		}
		member, err := store.GetMember(ctx, group.ID, bob.ID)
		if err != nil {
			t.Fatalf("GetMember failed: %v", err)
		}
		if member.Active() {
			t.Fatal("expected membership to be ended")
		}
	})

	t.Run("former member is denied group access", func(t *testing.T) {
		_, err := svc.GetGroup(ctx, bob.ID, group.ID)
		if got := CodeOf(err); got != CodeNotGroupMember {
			t.Errorf("code = %q, want %q", got, CodeNotGroupMember)
		}
	})
}
