package http

import (
	"net/http"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/service"
)

type CreateRentalRequest struct {
	ResourceOwner      domain.Identity `json:"resource_owner"`
	ResourceMint       domain.Identity `json:"resource_mint"`
	RenterTokenAccount domain.Identity `json:"renter_token_account"`
	Amount             uint64          `json:"amount"`
	Duration           int64           `json:"duration"`
}

type CompleteRentalRequest struct {
	OwnerTokenAccount domain.Identity `json:"owner_token_account"`
}

type ResolveDisputeRequest struct {
	RefundToRenter     bool            `json:"refund_to_renter"`
	RenterTokenAccount domain.Identity `json:"renter_token_account"`
	OwnerTokenAccount  domain.Identity `json:"owner_token_account"`
}

type ListRentalsResponse struct {
	Rentals []domain.RentalView `json:"rentals"`
}

func (h *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req CreateRentalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.CreateRental(r.Context(), caller, service.CreateRentalRequest{
		ResourceOwner:      req.ResourceOwner,
		ResourceMint:       req.ResourceMint,
		RenterTokenAccount: req.RenterTokenAccount,
		Amount:             req.Amount,
		Duration:           req.Duration,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (h *Handler) CompleteRental(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req CompleteRentalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.CompleteRental(r.Context(), caller, addr, req.OwnerTokenAccount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) DisputeRental(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.DisputeRental(r.Context(), caller, addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req ResolveDisputeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.ResolveDispute(r.Context(), caller, addr, req.RefundToRenter, req.RenterTokenAccount, req.OwnerTokenAccount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (h *Handler) GetRental(w http.ResponseWriter, r *http.Request) {
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

// ListMyRentals lists rentals where the caller is renter or owner.
func (h *Handler) ListMyRentals(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rentals, err := h.rentalSvc.ListRentals(r.Context(), caller)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if rentals == nil {
		rentals = []domain.RentalView{}
	}
	writeJSON(w, http.StatusOK, ListRentalsResponse{Rentals: rentals})
}
