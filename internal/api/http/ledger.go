package http

import (
	"net/http"

	"rentby-escrow/internal/domain"
)

type OpenAccountRequest struct {
	Mint domain.Identity `json:"mint"`
}

type TransferRequest struct {
	From   domain.Identity `json:"from"`
	To     domain.Identity `json:"to"`
	Amount uint64          `json:"amount"`
}

type FaucetRequest struct {
	Amount uint64 `json:"amount"`
}

type ListTransfersResponse struct {
	Transfers []domain.TokenTransfer `json:"transfers"`
}

func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req OpenAccountRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	acct, err := h.ledgerSvc.OpenAccount(r.Context(), caller, req.Mint)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	acct, err := h.ledgerSvc.GetAccount(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 32)
	if err != nil {
		writeError(w, r, err)
		return
	}
	transfers, err := h.ledgerSvc.ListTransfers(r.Context(), addr, int32(limit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if transfers == nil {
		transfers = []domain.TokenTransfer{}
	}
	writeJSON(w, http.StatusOK, ListTransfersResponse{Transfers: transfers})
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req TransferRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.ledgerSvc.Transfer(r.Context(), caller, req.From, req.To, req.Amount); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Faucet(w http.ResponseWriter, r *http.Request) {
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req FaucetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	acct, err := h.ledgerSvc.Faucet(r.Context(), addr, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledgerSvc.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
