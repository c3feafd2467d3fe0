package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/security"
	"rentby-escrow/internal/utils"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrNotActive, http.StatusConflict, "NOT_ACTIVE"},
	{domain.ErrNotDisputed, http.StatusConflict, "NOT_DISPUTED"},
	{domain.ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
	{domain.ErrRecordNotFound, http.StatusNotFound, "RECORD_NOT_FOUND"},
	{domain.ErrRecordExists, http.StatusConflict, "RECORD_EXISTS"},
	{domain.ErrAccountNotFound, http.StatusNotFound, "ACCOUNT_NOT_FOUND"},
	{domain.ErrAccountExists, http.StatusConflict, "ACCOUNT_EXISTS"},
	{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS"},
	{domain.ErrMintMismatch, http.StatusUnprocessableEntity, "MINT_MISMATCH"},
	{domain.ErrOwnerMismatch, http.StatusForbidden, "OWNER_MISMATCH"},
	{domain.ErrReleaseToHolding, http.StatusUnprocessableEntity, "RELEASE_TO_HOLDING"},
	{domain.ErrBalanceOverflow, http.StatusUnprocessableEntity, "BALANCE_OVERFLOW"},
	{domain.ErrCounterOverflow, http.StatusUnprocessableEntity, "COUNTER_OVERFLOW"},
	{domain.ErrZeroAmount, http.StatusBadRequest, "ZERO_AMOUNT"},
	{domain.ErrNegativeDuration, http.StatusBadRequest, "NEGATIVE_DURATION"},
	{domain.ErrFieldTooLong, http.StatusBadRequest, "FIELD_TOO_LONG"},
	{domain.ErrInvalidIdentity, http.StatusBadRequest, "INVALID_IDENTITY"},
	{domain.ErrFaucetDisabled, http.StatusForbidden, "FAUCET_DISABLED"},
	{utils.ErrQuoteOverflow, http.StatusUnprocessableEntity, "QUOTE_OVERFLOW"},
	{security.ErrInvalidSignature, http.StatusUnauthorized, "INVALID_SIGNATURE"},
	{security.ErrStaleSession, http.StatusUnauthorized, "STALE_SESSION"},
	{security.ErrExpiredToken, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	{security.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{security.ErrWrongTokenType, http.StatusUnauthorized, "INVALID_TOKEN"},
}

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code. Unknown errors are logged and
// reported as 500 without their message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, ErrorResponse{Code: m.code, Message: err.Error()})
			return
		}
	}
	if errors.Is(err, errBadRequest) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: err.Error()})
		return
	}
	logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "internal error"})
}
