package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of ledger movement a transaction
// records.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "DEPOSIT"
	TransactionTypeWithdraw TransactionType = "WITHDRAW"
	TransactionTypeBuy      TransactionType = "BUY"
	TransactionTypeSell     TransactionType = "SELL"
)

// Transaction represents one completed ledger operation. Records are
// immutable once appended to an account history and are never reordered.
type Transaction struct {
	ID            uuid.UUID
	Timestamp     time.Time
	Type          TransactionType
	Symbol        string          // set for BUY/SELL only
	Quantity      int64           // set for BUY/SELL only
	PricePerShare decimal.Decimal // set for BUY/SELL only
	TotalValue    decimal.Decimal // cash moved: amount, or price * quantity
}

// IsTrade reports whether the transaction is a share trade rather than a
// cash movement.
func (t *Transaction) IsTrade() bool {
	return t.Type == TransactionTypeBuy || t.Type == TransactionTypeSell
}

// Validate ensures the transaction adheres to domain rules before it is
// appended to an account history.
// CRITICAL: trade records must carry symbol, quantity and price, and their
// total must equal price * quantity; cash records must carry none of them.
func (t *Transaction) Validate() error {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeWithdraw, TransactionTypeBuy, TransactionTypeSell:
	default:
		return errors.New("transaction type must be DEPOSIT, WITHDRAW, BUY or SELL")
	}

	if t.TotalValue.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction total value must be positive")
	}

	if !t.IsTrade() {
		if t.Symbol != "" || t.Quantity != 0 || !t.PricePerShare.IsZero() {
			return errors.New("cash transaction must not carry symbol, quantity or price")
		}
		return nil
	}

	if t.Symbol == "" {
		return errors.New("trade transaction must carry a symbol")
	}
	if t.Quantity <= 0 {
		return errors.New("trade quantity must be positive")
	}
	if t.PricePerShare.LessThanOrEqual(decimal.Zero) {
		return errors.New("trade price per share must be positive")
	}

	expected := t.PricePerShare.Mul(decimal.NewFromInt(t.Quantity))
	if !t.TotalValue.Equal(expected) {
		return errors.New("trade total value must equal price per share times quantity")
	}

	return nil
}
