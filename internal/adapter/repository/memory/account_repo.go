package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/papertrade/papertrade-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository in memory. It
// guards only its own map; callers receive the live entity and the ledger
// service serializes all mutation of it.
type accountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates an empty in-memory account repository
func NewAccountRepository() domain.AccountRepository {
	return &accountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create stores a new account keyed by its owner ID
func (r *accountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.OwnerID]; ok {
		return fmt.Errorf("account %q: %w", account.OwnerID, domain.ErrAccountAlreadyExists)
	}

	r.accounts[account.OwnerID] = account
	return nil
}

// GetByOwnerID retrieves an account by its owner ID
func (r *accountRepository) GetByOwnerID(_ context.Context, ownerID string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[ownerID]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", ownerID, domain.ErrAccountNotFound)
	}

	return account, nil
}
