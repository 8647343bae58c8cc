package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/papertrade/papertrade-backend/internal/domain"
)

// errorResponse is the uniform error body: a stable machine-readable code
// plus the domain message with the operative numbers, verbatim.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeJSON emits a success response. All success paths go through here so
// the API stays uniform.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error onto its HTTP status and emits the
// uniform error body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), errorResponse{Code: errorCode(err), Error: err.Error()})
}

// writeErrorMessage emits an adapter-level error that has no domain error
// behind it (malformed body, wrong method).
func writeErrorMessage(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// statusCode maps domain errors onto HTTP statuses: caller-input
// violations are 400, business-rule conflicts are 409, unknown accounts
// are 404.
func statusCode(err error) int {
	var (
		invalidAmount      *domain.InvalidAmountError
		invalidQuantity    *domain.InvalidQuantityError
		invalidSymbol      *domain.InvalidSymbolError
		insufficientFunds  *domain.InsufficientFundsError
		insufficientShares *domain.InsufficientSharesError
	)

	switch {
	case errors.As(err, &invalidAmount),
		errors.As(err, &invalidQuantity),
		errors.As(err, &invalidSymbol):
		return http.StatusBadRequest
	case errors.As(err, &insufficientFunds),
		errors.As(err, &insufficientShares):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the stable code for an error kind so UIs can format
// their own messages without parsing ours.
func errorCode(err error) string {
	var (
		invalidAmount      *domain.InvalidAmountError
		invalidQuantity    *domain.InvalidQuantityError
		invalidSymbol      *domain.InvalidSymbolError
		insufficientFunds  *domain.InsufficientFundsError
		insufficientShares *domain.InsufficientSharesError
	)

	switch {
	case errors.As(err, &invalidAmount):
		return "INVALID_AMOUNT"
	case errors.As(err, &invalidQuantity):
		return "INVALID_QUANTITY"
	case errors.As(err, &invalidSymbol):
		return "INVALID_SYMBOL"
	case errors.As(err, &insufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.As(err, &insufficientShares):
		return "INSUFFICIENT_SHARES"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "ACCOUNT_NOT_FOUND"
	default:
		return "INTERNAL"
	}
}
