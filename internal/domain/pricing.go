package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceService provides the current market price for a trading symbol.
type PriceService interface {
	// Price returns the current price per share for the given symbol.
	// Symbols are matched case-insensitively. A symbol outside the known
	// set fails with *InvalidSymbolError.
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}
