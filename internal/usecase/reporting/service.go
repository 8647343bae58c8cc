package reporting

import (
	"context"
	"fmt"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/shopspring/decimal"
)

// AccountReader provides consistent read-only ledger snapshots. The ledger
// service satisfies this interface.
type AccountReader interface {
	Snapshot(ctx context.Context, ownerID string) (*ledger.Snapshot, error)
}

// Overview represents the combined report for one account, the set of
// values a consumer renders on a single screen.
type Overview struct {
	OwnerID        string
	CashBalance    decimal.Decimal
	PortfolioValue decimal.Decimal
	ProfitLoss     decimal.Decimal
	Holdings       map[string]int64
}

// Service handles derived reporting: portfolio valuation and profit/loss.
type Service struct {
	Accounts AccountReader
	Prices   domain.PriceService
}

// NewService creates a new reporting Service instance
func NewService(accounts AccountReader, prices domain.PriceService) *Service {
	return &Service{
		Accounts: accounts,
		Prices:   prices,
	}
}

// PortfolioValue returns cash plus the market value of every holding.
// Policy: a held symbol whose price lookup fails (e.g. delisted)
// contributes zero and is excluded; the call itself never fails for that
// reason. Lenient degradation is deliberate and covered by tests.
func (s *Service) PortfolioValue(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	snapshot, err := s.Accounts.Snapshot(ctx, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read account snapshot: %w", err)
	}
	return s.valueOf(ctx, snapshot), nil
}

// ProfitLoss returns the portfolio value minus the cumulative deposit
// total. Positive is profit, negative is loss; there is no floor or
// ceiling.
func (s *Service) ProfitLoss(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	snapshot, err := s.Accounts.Snapshot(ctx, ownerID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read account snapshot: %w", err)
	}
	return s.valueOf(ctx, snapshot).Sub(snapshot.TotalDeposited), nil
}

// GetOverview returns cash balance, portfolio value, profit/loss and
// holdings computed from one consistent snapshot.
func (s *Service) GetOverview(ctx context.Context, ownerID string) (*Overview, error) {
	snapshot, err := s.Accounts.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read account snapshot: %w", err)
	}

	value := s.valueOf(ctx, snapshot)

	return &Overview{
		OwnerID:        snapshot.OwnerID,
		CashBalance:    snapshot.CashBalance,
		PortfolioValue: value,
		ProfitLoss:     value.Sub(snapshot.TotalDeposited),
		Holdings:       snapshot.Holdings,
	}, nil
}

// valueOf computes cash plus holdings value for a snapshot, skipping
// holdings whose price lookup fails.
func (s *Service) valueOf(ctx context.Context, snapshot *ledger.Snapshot) decimal.Decimal {
	value := snapshot.CashBalance
	for symbol, quantity := range snapshot.Holdings {
		price, err := s.Prices.Price(ctx, symbol)
		if err != nil {
			// Delisted or otherwise unpriceable holdings contribute
			// nothing.
			continue
		}
		value = value.Add(price.Mul(decimal.NewFromInt(quantity)))
	}
	return value
}
