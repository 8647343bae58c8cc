package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/papertrade/papertrade-backend/internal/domain"
	"github.com/papertrade/papertrade-backend/internal/usecase/ledger"
	"github.com/papertrade/papertrade-backend/internal/usecase/reporting"
	"github.com/shopspring/decimal"
)

// Server exposes the ledger and reporting services over a JSON HTTP API.
// It is the external consumer surface: it parses input, calls the
// services and renders their return values and error messages.
type Server struct {
	Ledger    *ledger.Service
	Reporting *reporting.Service

	mux *http.ServeMux
}

// NewServer creates a new HTTP server instance over the given services
func NewServer(ledgerService *ledger.Service, reportingService *reporting.Service) *Server {
	s := &Server{
		Ledger:    ledgerService,
		Reporting: reportingService,
	}
	s.routes()
	return s
}

// routes registers all endpoints, mounted both at the root and under
// /api/v1 so versioned and unversioned clients resolve the same handlers.
func (s *Server) routes() {
	v1 := http.NewServeMux()
	v1.HandleFunc("/health", s.health)
	v1.HandleFunc("/accounts/", s.accountSubroutes)

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", v1))
	root.Handle("/", v1)

	s.mux = root
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// accountSubroutes dispatches /accounts/{owner}/{action}.
func (s *Server) accountSubroutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/accounts/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	owner, action := parts[0], parts[1]

	switch action {
	case "deposit":
		s.post(w, r, func() { s.handleDeposit(w, r, owner) })
	case "withdraw":
		s.post(w, r, func() { s.handleWithdraw(w, r, owner) })
	case "buy":
		s.post(w, r, func() { s.handleBuy(w, r, owner) })
	case "sell":
		s.post(w, r, func() { s.handleSell(w, r, owner) })
	case "balance":
		s.get(w, r, func() { s.handleBalance(w, r, owner) })
	case "holdings":
		s.get(w, r, func() { s.handleHoldings(w, r, owner) })
	case "transactions":
		s.get(w, r, func() { s.handleTransactions(w, r, owner) })
	case "portfolio":
		s.get(w, r, func() { s.handlePortfolio(w, r, owner) })
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) post(w http.ResponseWriter, r *http.Request, handle func()) {
	if r.Method != http.MethodPost {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	handle()
}

func (s *Server) get(w http.ResponseWriter, r *http.Request, handle func()) {
	if r.Method != http.MethodGet {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
		return
	}
	handle()
}

// amountRequest carries a cash amount as a decimal string, so values
// never round-trip through floats.
type amountRequest struct {
	Amount string `json:"amount"`
}

// tradeRequest carries a trade order. Quantity decodes as json.Number so
// fractional inputs reach validation instead of being truncated.
type tradeRequest struct {
	Symbol   string      `json:"symbol"`
	Quantity json.Number `json:"quantity"`
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request, owner string) {
	amount, ok := s.decodeAmount(w, r)
	if !ok {
		return
	}

	tx, err := s.Ledger.Deposit(r.Context(), owner, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionToResponse(tx))
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request, owner string) {
	amount, ok := s.decodeAmount(w, r)
	if !ok {
		return
	}

	tx, err := s.Ledger.Withdraw(r.Context(), owner, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionToResponse(tx))
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request, owner string) {
	symbol, quantity, ok := s.decodeTrade(w, r)
	if !ok {
		return
	}

	tx, err := s.Ledger.BuyShares(r.Context(), owner, symbol, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionToResponse(tx))
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request, owner string) {
	symbol, quantity, ok := s.decodeTrade(w, r)
	if !ok {
		return
	}

	tx, err := s.Ledger.SellShares(r.Context(), owner, symbol, quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactionToResponse(tx))
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request, owner string) {
	balance, err := s.Ledger.CashBalance(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		OwnerID:     owner,
		CashBalance: balance.String(),
	})
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request, owner string) {
	holdings, err := s.Ledger.Holdings(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, holdingsResponse{
		OwnerID:  owner,
		Holdings: holdings,
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request, owner string) {
	history, err := s.Ledger.TransactionHistory(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}

	transactions := make([]transactionResponse, 0, len(history))
	for i := range history {
		transactions = append(transactions, transactionToResponse(&history[i]))
	}
	writeJSON(w, http.StatusOK, transactionsResponse{
		OwnerID:      owner,
		Transactions: transactions,
	})
}

func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, owner string) {
	overview, err := s.Reporting.GetOverview(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolioResponse{
		OwnerID:        overview.OwnerID,
		CashBalance:    overview.CashBalance.String(),
		PortfolioValue: overview.PortfolioValue.String(),
		ProfitLoss:     overview.ProfitLoss.String(),
		Holdings:       overview.Holdings,
	})
}

// decodeAmount parses the request body and its decimal amount string.
func (s *Server) decodeAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid amount format: "+err.Error())
		return decimal.Zero, false
	}
	return amount, true
}

// decodeTrade parses the request body and validates that the quantity is
// a whole number. Fractional quantities fail as InvalidQuantityError here
// rather than being truncated on the way into the ledger.
func (s *Server) decodeTrade(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body: "+err.Error())
		return "", 0, false
	}

	quantity, err := decimal.NewFromString(req.Quantity.String())
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "invalid quantity format: "+err.Error())
		return "", 0, false
	}
	if !quantity.IsInteger() {
		writeError(w, &domain.InvalidQuantityError{Quantity: quantity})
		return "", 0, false
	}
	return req.Symbol, quantity.IntPart(), true
}

// transactionResponse renders one transaction record. Trade-only fields
// are omitted for cash movements.
type transactionResponse struct {
	ID            string `json:"id"`
	Timestamp     string `json:"timestamp"`
	Type          string `json:"type"`
	Symbol        string `json:"symbol,omitempty"`
	Quantity      int64  `json:"quantity,omitempty"`
	PricePerShare string `json:"price_per_share,omitempty"`
	TotalValue    string `json:"total_value"`
}

type balanceResponse struct {
	OwnerID     string `json:"owner_id"`
	CashBalance string `json:"cash_balance"`
}

type holdingsResponse struct {
	OwnerID  string           `json:"owner_id"`
	Holdings map[string]int64 `json:"holdings"`
}

type transactionsResponse struct {
	OwnerID      string                `json:"owner_id"`
	Transactions []transactionResponse `json:"transactions"`
}

type portfolioResponse struct {
	OwnerID        string           `json:"owner_id"`
	CashBalance    string           `json:"cash_balance"`
	PortfolioValue string           `json:"portfolio_value"`
	ProfitLoss     string           `json:"profit_loss"`
	Holdings       map[string]int64 `json:"holdings"`
}

func transactionToResponse(tx *domain.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:         tx.ID.String(),
		Timestamp:  tx.Timestamp.Format(time.RFC3339),
		Type:       string(tx.Type),
		TotalValue: tx.TotalValue.String(),
	}
	if tx.IsTrade() {
		resp.Symbol = tx.Symbol
		resp.Quantity = tx.Quantity
		resp.PricePerShare = tx.PricePerShare.String()
	}
	return resp
}
