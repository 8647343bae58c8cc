package reporting

import (
	"context"
	"testing"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountReader is a mock implementation of AccountReader for testing
type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) Snapshot(ctx context.Context, ownerID string) (*ledger.Snapshot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Snapshot), args.Error(1)
}

// MockPriceService is a mock implementation of PriceService for testing
type MockPriceService struct {
	mock.Mock
}

func (m *MockPriceService) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestPortfolioValue_SumsCashAndHoldings(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	// Setup: 9100 cash, 6 AAPL at 150 and 1 TSLA at 700
	snapshot := &ledger.Snapshot{
		OwnerID:        "demo",
		CashBalance:    decimal.NewFromInt(9100),
		TotalDeposited: decimal.NewFromInt(10000),
		Holdings:       map[string]int64{"AAPL": 6, "TSLA": 1},
	}
	mockReader.On("Snapshot", ctx, "demo").Return(snapshot, nil)
	mockPrices.On("Price", ctx, "AAPL").Return(decimal.NewFromInt(150), nil)
	mockPrices.On("Price", ctx, "TSLA").Return(decimal.NewFromInt(700), nil)

	value, err := service.PortfolioValue(ctx, "demo")

	require.NoError(t, err)
	// 9100 + 6*150 + 1*700 = 10700
	assert.True(t, value.Equal(decimal.NewFromInt(10700)), "got %s", value)
	mockReader.AssertExpectations(t)
	mockPrices.AssertExpectations(t)
}

func TestPortfolioValue_DelistedHoldingContributesZero(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	snapshot := &ledger.Snapshot{
		OwnerID:     "demo",
		CashBalance: decimal.NewFromInt(1000),
		Holdings:    map[string]int64{"AAPL": 2, "GONE": 50},
	}
	mockReader.On("Snapshot", ctx, "demo").Return(snapshot, nil)
	mockPrices.On("Price", ctx, "AAPL").Return(decimal.NewFromInt(150), nil)
	mockPrices.On("Price", ctx, "GONE").Return(decimal.Zero, &domain.InvalidSymbolError{Symbol: "GONE"})

	value, err := service.PortfolioValue(ctx, "demo")

	// The failed lookup excludes that holding but never fails the call.
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.NewFromInt(1300)), "got %s", value)
}

func TestProfitLoss_ProfitScenario(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	snapshot := &ledger.Snapshot{
		OwnerID:        "demo",
		CashBalance:    decimal.NewFromInt(500),
		TotalDeposited: decimal.NewFromInt(1000),
		Holdings:       map[string]int64{"GOOGL": 1},
	}
	mockReader.On("Snapshot", ctx, "demo").Return(snapshot, nil)
	mockPrices.On("Price", ctx, "GOOGL").Return(decimal.NewFromInt(2500), nil)

	pl, err := service.ProfitLoss(ctx, "demo")

	require.NoError(t, err)
	// 500 + 2500 - 1000 = +2000
	assert.True(t, pl.Equal(decimal.NewFromInt(2000)), "got %s", pl)
}

func TestProfitLoss_LossScenario(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	// A delisted holding values at zero, so the account shows a loss.
	snapshot := &ledger.Snapshot{
		OwnerID:        "demo",
		CashBalance:    decimal.NewFromInt(300),
		TotalDeposited: decimal.NewFromInt(1000),
		Holdings:       map[string]int64{"GONE": 10},
	}
	mockReader.On("Snapshot", ctx, "demo").Return(snapshot, nil)
	mockPrices.On("Price", ctx, "GONE").Return(decimal.Zero, &domain.InvalidSymbolError{Symbol: "GONE"})

	pl, err := service.ProfitLoss(ctx, "demo")

	require.NoError(t, err)
	assert.True(t, pl.Equal(decimal.NewFromInt(-700)), "got %s", pl)
}

func TestGetOverview_ComputesAllFieldsFromOneSnapshot(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	snapshot := &ledger.Snapshot{
		OwnerID:        "demo",
		CashBalance:    decimal.NewFromInt(9100),
		TotalDeposited: decimal.NewFromInt(10000),
		Holdings:       map[string]int64{"AAPL": 6},
	}
	mockReader.On("Snapshot", ctx, "demo").Return(snapshot, nil)
	mockPrices.On("Price", ctx, "AAPL").Return(decimal.NewFromInt(150), nil)

	overview, err := service.GetOverview(ctx, "demo")

	require.NoError(t, err)
	assert.Equal(t, "demo", overview.OwnerID)
	assert.True(t, overview.CashBalance.Equal(decimal.NewFromInt(9100)))
	assert.True(t, overview.PortfolioValue.Equal(decimal.NewFromInt(10000)))
	assert.True(t, overview.ProfitLoss.IsZero())
	assert.Equal(t, map[string]int64{"AAPL": 6}, overview.Holdings)
	// The snapshot is read exactly once for all derived values.
	mockReader.AssertNumberOfCalls(t, "Snapshot", 1)
}

func TestReporting_UnknownAccountFails(t *testing.T) {
	ctx := context.Background()
	mockReader := new(MockAccountReader)
	mockPrices := new(MockPriceService)
	service := NewService(mockReader, mockPrices)

	mockReader.On("Snapshot", ctx, "ghost").Return(nil, domain.ErrAccountNotFound)

	_, err := service.PortfolioValue(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = service.ProfitLoss(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = service.GetOverview(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
