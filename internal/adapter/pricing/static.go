package pricing

import (
	"context"
	"strings"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// staticPriceService implements domain.PriceService over a fixed table.
// It stands in for a live market data feed; prices never move.
type staticPriceService struct {
	prices map[string]decimal.Decimal
}

// NewStaticPriceService creates a price service over the built-in demo
// table.
func NewStaticPriceService() domain.PriceService {
	return NewStaticPriceServiceWithTable(map[string]decimal.Decimal{
		"AAPL":  decimal.NewFromFloat(150.00),
		"GOOGL": decimal.NewFromFloat(2500.00),
		"TSLA":  decimal.NewFromFloat(700.00),
	})
}

// NewStaticPriceServiceWithTable creates a price service over the given
// table. Table keys must be uppercase symbols.
func NewStaticPriceServiceWithTable(prices map[string]decimal.Decimal) domain.PriceService {
	return &staticPriceService{prices: prices}
}

// Price returns the table price for the symbol, matched
// case-insensitively. Symbols outside the table fail with
// *domain.InvalidSymbolError carrying the caller's original input.
func (s *staticPriceService) Price(_ context.Context, symbol string) (decimal.Decimal, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	price, ok := s.prices[normalized]
	if !ok {
		return decimal.Zero, &domain.InvalidSymbolError{Symbol: symbol}
	}
	return price, nil
}
