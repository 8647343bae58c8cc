package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level sentinels. Adapters wrap these with context; callers
// branch with errors.Is.
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// InvalidAmountError indicates a deposit or withdrawal amount that is not
// strictly positive.
type InvalidAmountError struct {
	Amount decimal.Decimal
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("amount must be a positive number, got %s", e.Amount)
}

// InvalidQuantityError indicates a share quantity that is not a positive
// whole number. Quantity keeps the rejected input so fractional values
// (e.g. 1.5) survive into the message instead of being truncated.
type InvalidQuantityError struct {
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be a positive integer, got %s", e.Quantity)
}

// InvalidSymbolError indicates a symbol unknown to the pricing service.
// Symbol holds the caller's input as given, before normalization.
type InvalidSymbolError struct {
	Symbol string
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("symbol %q is not a valid trading symbol", e.Symbol)
}

// InsufficientFundsError indicates that a withdrawal or purchase exceeds
// the available cash balance. Symbol and Quantity are set only when the
// failed operation was a purchase.
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
	Symbol    string
	Quantity  int64
}

func (e *InsufficientFundsError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("cannot buy %d shares of %s: cost $%s exceeds cash balance of $%s",
			e.Quantity, e.Symbol, e.Requested.StringFixed(2), e.Available.StringFixed(2))
	}
	return fmt.Sprintf("cannot withdraw $%s: current balance is $%s",
		e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

// InsufficientSharesError indicates an attempt to sell more shares of a
// symbol than the account currently owns.
type InsufficientSharesError struct {
	Symbol    string
	Requested int64
	Owned     int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("cannot sell %d shares of %s: only %d owned",
		e.Requested, e.Symbol, e.Owned)
}
