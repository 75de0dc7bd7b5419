package identity

import "context"

// Lookup resolves user identity facts for other subsystems
type Lookup interface {
	// UserExists checks whether a user exists
	UserExists(ctx context.Context, id int64) (bool, error)
	// GetRole returns the user's role; USER_NOT_FOUND when absent
	GetRole(ctx context.Context, id int64) (Role, error)
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	Lookup

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail finds a user by email (case-insensitive)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks whether the email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save inserts a new user or updates an existing one
	Save(ctx context.Context, user *User) error
}
