package models

// User represents a registered user.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user. Voice attribution matches
	// spoken names against it.
	Name string

	// Email is the user's email address (unique).
	Email string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64
}

// Friendship is one directed half of a friend link.
// A link between A and B is always stored as both (A, B) and (B, A).
type Friendship struct {
	UserID    string
	FriendID  string
	CreatedAt int64
}
