package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/shopspring/decimal"
)

// AccountSeeder handles bootstrap of the demo account at startup
type AccountSeeder struct {
	accounts domain.AccountRepository
	ledger   *ledger.Service
}

// NewAccountSeeder creates a new AccountSeeder instance
func NewAccountSeeder(accounts domain.AccountRepository, ledgerService *ledger.Service) *AccountSeeder {
	return &AccountSeeder{
		accounts: accounts,
		ledger:   ledgerService,
	}
}

// Seed ensures an account exists for ownerID and pre-funds it with
// initialDeposit. The pre-fund only happens while the account has never
// been deposited into, so re-running the seeder never funds twice. A zero
// or negative initialDeposit skips funding.
func (s *AccountSeeder) Seed(ctx context.Context, ownerID string, initialDeposit decimal.Decimal) error {
	account, err := s.accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("failed to look up account %q: %w", ownerID, err)
		}

		account = domain.NewAccount(ownerID)

		// Validate before creating
		if err := account.Validate(); err != nil {
			return err
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create account %q: %w", ownerID, err)
		}
	}

	if initialDeposit.LessThanOrEqual(decimal.Zero) {
		return nil
	}
	if !account.TotalDeposited.IsZero() {
		return nil
	}

	if _, err := s.ledger.Deposit(ctx, ownerID, initialDeposit); err != nil {
		return fmt.Errorf("failed to pre-fund account %q: %w", ownerID, err)
	}

	return nil
}
