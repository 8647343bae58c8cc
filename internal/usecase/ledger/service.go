package ledger

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Snapshot is a consistent read-only view of one account's ledger state,
// taken under the service lock. The holdings map is an independent copy.
type Snapshot struct {
	OwnerID        string
	CashBalance    decimal.Decimal
	TotalDeposited decimal.Decimal
	Holdings       map[string]int64
}

// Service is the account ledger: it owns every mutation of cash, holdings
// and the transaction history, consulting the price service for trades.
// One mutex serializes all account access; the core bookkeeping assumes a
// single caller and the HTTP layer is concurrent.
type Service struct {
	mu       sync.Mutex
	Accounts domain.AccountRepository
	Prices   domain.PriceService
}

// NewService creates a new ledger Service instance
func NewService(accounts domain.AccountRepository, prices domain.PriceService) *Service {
	return &Service{
		Accounts: accounts,
		Prices:   prices,
	}
}

// Deposit adds cash to the account and raises the cumulative deposit
// total. Fails with *domain.InvalidAmountError unless amount > 0.
// Returns the appended DEPOSIT record.
func (s *Service) Deposit(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.InvalidAmountError{Amount: amount}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	tx := domain.Transaction{
		ID:         uuid.New(),
		Timestamp:  time.Now(),
		Type:       domain.TransactionTypeDeposit,
		TotalValue: amount,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	account.CashBalance = account.CashBalance.Add(amount)
	account.TotalDeposited = account.TotalDeposited.Add(amount)
	account.Transactions = append(account.Transactions, tx)

	return &tx, nil
}

// Withdraw removes cash from the account. Fails with
// *domain.InvalidAmountError unless amount > 0 and with
// *domain.InsufficientFundsError when the amount exceeds the cash balance.
// The deposit total is unchanged. On failure the account is untouched.
func (s *Service) Withdraw(ctx context.Context, ownerID string, amount decimal.Decimal) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, &domain.InvalidAmountError{Amount: amount}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(account.CashBalance) {
		return nil, &domain.InsufficientFundsError{
			Requested: amount,
			Available: account.CashBalance,
		}
	}

	tx := domain.Transaction{
		ID:         uuid.New(),
		Timestamp:  time.Now(),
		Type:       domain.TransactionTypeWithdraw,
		TotalValue: amount,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	account.CashBalance = account.CashBalance.Sub(amount)
	account.Transactions = append(account.Transactions, tx)

	return &tx, nil
}

// BuyShares purchases quantity shares of symbol at the current market
// price, immediately and in full. The symbol is normalized to uppercase
// before the price lookup. Fails with *domain.InvalidQuantityError,
// *domain.InvalidSymbolError (propagated from the price service) or
// *domain.InsufficientFundsError; no state is mutated on any failure.
func (s *Service) BuyShares(ctx context.Context, ownerID, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: decimal.NewFromInt(quantity)}
	}
	symbol = normalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	price, err := s.Prices.Price(ctx, symbol)
	if err != nil {
		return nil, err
	}

	totalCost := price.Mul(decimal.NewFromInt(quantity))
	if totalCost.GreaterThan(account.CashBalance) {
		return nil, &domain.InsufficientFundsError{
			Requested: totalCost,
			Available: account.CashBalance,
			Symbol:    symbol,
			Quantity:  quantity,
		}
	}

	tx := domain.Transaction{
		ID:            uuid.New(),
		Timestamp:     time.Now(),
		Type:          domain.TransactionTypeBuy,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		TotalValue:    totalCost,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	account.CashBalance = account.CashBalance.Sub(totalCost)
	account.Holdings[symbol] += quantity
	account.Transactions = append(account.Transactions, tx)

	return &tx, nil
}

// SellShares sells quantity owned shares of symbol at the current market
// price. Ownership is checked BEFORE the price lookup, so selling shares
// one does not own fails with *domain.InsufficientSharesError even when
// the symbol is unknown to the price service. A holding that reaches zero
// is removed from the account entirely.
func (s *Service) SellShares(ctx context.Context, ownerID, symbol string, quantity int64) (*domain.Transaction, error) {
	if quantity <= 0 {
		return nil, &domain.InvalidQuantityError{Quantity: decimal.NewFromInt(quantity)}
	}
	symbol = normalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	owned := account.HoldingQuantity(symbol)
	if owned < quantity {
		return nil, &domain.InsufficientSharesError{
			Symbol:    symbol,
			Requested: quantity,
			Owned:     owned,
		}
	}

	// Holdings only ever contain symbols bought through the price
	// service, so a lookup failure here is an invariant violation, not a
	// user error.
	price, err := s.Prices.Price(ctx, symbol)
	if err != nil {
		return nil, err
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))

	tx := domain.Transaction{
		ID:            uuid.New(),
		Timestamp:     time.Now(),
		Type:          domain.TransactionTypeSell,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		TotalValue:    proceeds,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	account.CashBalance = account.CashBalance.Add(proceeds)
	account.Holdings[symbol] -= quantity
	if account.Holdings[symbol] == 0 {
		delete(account.Holdings, symbol)
	}
	account.Transactions = append(account.Transactions, tx)

	return &tx, nil
}

// CashBalance returns the account's current cash balance.
func (s *Service) CashBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.CashBalance, nil
}

// Holdings returns an independent copy of the account's holdings.
func (s *Service) Holdings(ctx context.Context, ownerID string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return account.HoldingsCopy(), nil
}

// TransactionHistory returns an independent copy of the account's
// transaction records in chronological insertion order.
func (s *Service) TransactionHistory(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return account.TransactionsCopy(), nil
}

// Snapshot returns a consistent view of cash, deposit total and holdings,
// all read under a single lock acquisition.
func (s *Service) Snapshot(ctx context.Context, ownerID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.Accounts.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		OwnerID:        account.OwnerID,
		CashBalance:    account.CashBalance,
		TotalDeposited: account.TotalDeposited,
		Holdings:       account.HoldingsCopy(),
	}, nil
}

// normalizeSymbol uppercases and trims a symbol so lookups and holdings
// keys are case-insensitive.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
