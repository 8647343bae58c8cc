package domain

import "context"

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// Create stores a new account. Fails with ErrAccountAlreadyExists if
	// an account for the same owner already exists.
	Create(ctx context.Context, account *Account) error

	// GetByOwnerID retrieves an account by its owner ID. Fails with
	// ErrAccountNotFound if no such account exists.
	GetByOwnerID(ctx context.Context, ownerID string) (*Account, error)
}
