package models

// Group is a set of users who share bills and payments.
// The creator is always the first member.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Description is free text shown alongside the name.
	Description string

	// CreatedBy is the user ID of the creator. Only the creator may delete
	// the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Membership links a user to a group.
// At most one membership exists per (GroupID, UserID) pair.
type Membership struct {
	GroupID  string
	UserID   string
	JoinedAt int64
}

// Member is a membership joined with the member's user record.
type Member struct {
	Membership
	Name  string
	Email string
}
