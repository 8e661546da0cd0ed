package user

import "context"

// Repository defines the interface for user persistence.
// Implemented by the infrastructure layer; the domain has no knowledge of the
// actual storage mechanism.
type Repository interface {
	// Create persists a new user. Returns shared.ErrUsernameTaken or
	// shared.ErrEmailTaken on unique constraint violations.
	Create(ctx context.Context, u *User) error

	// GetByID returns a user by internal ID.
	GetByID(ctx context.Context, id ID) (*User, error)

	// GetByUsername returns a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByEmail returns a user by email.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateStreak persists only the streak fields of the user.
	// The write is a single-row update and therefore atomic at the store.
	UpdateStreak(ctx context.Context, u *User) error

	// UpdateDailyGoal persists the user's daily goal.
	UpdateDailyGoal(ctx context.Context, u *User) error
}
