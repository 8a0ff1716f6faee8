package user

import (
	"context"
)

type UserRepository interface {
	// Create inserts a new user. Returns ErrUsernameTaken on conflict.
	Create(ctx context.Context, u *User) error

	// GetByUsername retrieves a user. Returns ErrUserNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns all users; the sync job mirrors each one's records.
	List(ctx context.Context) ([]User, error)
}
