package seeder

import (
	"context"
	"fmt"
	"testing"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountRepo is a minimal in-memory repository for seeder tests; the
// seeder needs the created account to be visible to the follow-up deposit,
// which a canned mock cannot provide.
type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.OwnerID]; ok {
		return domain.ErrAccountAlreadyExists
	}
	r.accounts[account.OwnerID] = account
	return nil
}

func (r *fakeAccountRepo) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Account, error) {
	account, ok := r.accounts[ownerID]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", ownerID, domain.ErrAccountNotFound)
	}
	return account, nil
}

func TestSeed_CreatesAndPreFundsAccount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	ledgerService := ledger.NewService(repo, nil)
	seeder := NewAccountSeeder(repo, ledgerService)

	err := seeder.Seed(ctx, "demo", decimal.NewFromInt(10000))

	require.NoError(t, err)
	account, err := repo.GetByOwnerID(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, account.CashBalance.Equal(decimal.NewFromInt(10000)))
	assert.True(t, account.TotalDeposited.Equal(decimal.NewFromInt(10000)))
	require.Len(t, account.Transactions, 1)
	assert.Equal(t, domain.TransactionTypeDeposit, account.Transactions[0].Type)
}

func TestSeed_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	ledgerService := ledger.NewService(repo, nil)
	seeder := NewAccountSeeder(repo, ledgerService)

	require.NoError(t, seeder.Seed(ctx, "demo", decimal.NewFromInt(10000)))
	require.NoError(t, seeder.Seed(ctx, "demo", decimal.NewFromInt(10000)))

	// The second run must not fund the account again.
	account, err := repo.GetByOwnerID(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, account.CashBalance.Equal(decimal.NewFromInt(10000)))
	assert.Len(t, account.Transactions, 1)
}

func TestSeed_DoesNotRefundSpentBalance(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	ledgerService := ledger.NewService(repo, nil)
	seeder := NewAccountSeeder(repo, ledgerService)

	require.NoError(t, seeder.Seed(ctx, "demo", decimal.NewFromInt(10000)))
	_, err := ledgerService.Withdraw(ctx, "demo", decimal.NewFromInt(10000))
	require.NoError(t, err)

	// Balance back at zero through spending is still not re-funded: the
	// deposit history shows the account has been funded before.
	require.NoError(t, seeder.Seed(ctx, "demo", decimal.NewFromInt(10000)))

	account, err := repo.GetByOwnerID(ctx, "demo")
	require.NoError(t, err)
	assert.Len(t, account.Transactions, 2)
}

func TestSeed_ZeroInitialDepositSkipsFunding(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	ledgerService := ledger.NewService(repo, nil)
	seeder := NewAccountSeeder(repo, ledgerService)

	err := seeder.Seed(ctx, "demo", decimal.Zero)

	require.NoError(t, err)
	account, err := repo.GetByOwnerID(ctx, "demo")
	require.NoError(t, err)
	assert.True(t, account.CashBalance.IsZero())
	assert.Empty(t, account.Transactions)
}
