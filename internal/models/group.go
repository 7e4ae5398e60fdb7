package models

// GroupRole is a member's permission level within a group.
type GroupRole string

const (
	RoleAdmin  GroupRole = "ADMIN"
	RoleMember GroupRole = "MEMBER"
)

// Group represents a set of users who split expenses together.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name (e.g., "Roommates", "Goa Trip").
	Name string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// GroupMember is one user's membership in a group. Removing a member or
// leaving never deletes the row: LeftAt records when the membership ended so
// that historical expenses keep resolving.
type GroupMember struct {
	GroupID string
	UserID  string
	Role    GroupRole

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64

	// LeftAt is zero while the membership is active.
	LeftAt int64
}

// Active reports whether the membership is current.
func (m *GroupMember) Active() bool {
	return m != nil && m.LeftAt == 0
}
