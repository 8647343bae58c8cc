package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Account represents one user's brokerage account in the domain layer.
// It owns the cash balance, cumulative deposit total, share holdings and
// the append-only transaction history. All mutation goes through the
// ledger service; the entity itself carries the state and its invariants.
type Account struct {
	OwnerID        string
	CashBalance    decimal.Decimal
	TotalDeposited decimal.Decimal
	Holdings       map[string]int64 // symbol (uppercase) -> positive share count
	Transactions   []Transaction
}

// NewAccount creates an empty account for the given owner: zero cash, zero
// deposits, no holdings, no transactions.
func NewAccount(ownerID string) *Account {
	return &Account{
		OwnerID:        ownerID,
		CashBalance:    decimal.Zero,
		TotalDeposited: decimal.Zero,
		Holdings:       make(map[string]int64),
		Transactions:   make([]Transaction, 0),
	}
}

// HoldingQuantity returns the number of shares owned for a symbol, zero if
// the symbol is not held.
func (a *Account) HoldingQuantity(symbol string) int64 {
	return a.Holdings[symbol]
}

// HoldingsCopy returns an independent copy of the holdings map. Mutating
// the returned map never affects account state.
func (a *Account) HoldingsCopy() map[string]int64 {
	holdings := make(map[string]int64, len(a.Holdings))
	for symbol, quantity := range a.Holdings {
		holdings[symbol] = quantity
	}
	return holdings
}

// TransactionsCopy returns an independent copy of the transaction history
// in insertion order.
func (a *Account) TransactionsCopy() []Transaction {
	transactions := make([]Transaction, len(a.Transactions))
	copy(transactions, a.Transactions)
	return transactions
}

// Validate ensures the account adheres to domain rules.
// Invariants: cash balance and deposit total are never negative, and no
// holding entry exists with a non-positive quantity.
func (a *Account) Validate() error {
	if a.OwnerID == "" {
		return errors.New("account owner ID cannot be empty")
	}
	if a.CashBalance.IsNegative() {
		return errors.New("account cash balance cannot be negative")
	}
	if a.TotalDeposited.IsNegative() {
		return errors.New("account total deposited cannot be negative")
	}
	for symbol, quantity := range a.Holdings {
		if symbol == "" {
			return errors.New("holding symbol cannot be empty")
		}
		if quantity <= 0 {
			return errors.New("holding quantity must be positive")
		}
	}
	return nil
}
