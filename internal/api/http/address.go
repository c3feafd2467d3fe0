package http

import (
	"net/http"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/domain"
)

type AddressResponse struct {
	Address domain.Identity `json:"address"`
	Nonce   uint8           `json:"nonce"`
}

func writeAddress(w http.ResponseWriter, r *http.Request, addr domain.Identity, nonce uint8, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AddressResponse{Address: addr, Nonce: nonce})
}

// RentalAddress derives the rental address for ?renter= and ?mint=.
func (h *Handler) RentalAddress(w http.ResponseWriter, r *http.Request) {
	renter, err := requiredQueryIdentity(r, "renter")
	if err != nil {
		writeError(w, r, err)
		return
	}
	mint, err := requiredQueryIdentity(r, "mint")
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, nonce, err := authority.RentalAddress(renter, mint)
	writeAddress(w, r, addr, nonce, err)
}

// EscrowAddress derives the holding account of ?rental=.
func (h *Handler) EscrowAddress(w http.ResponseWriter, r *http.Request) {
	rental, err := requiredQueryIdentity(r, "rental")
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, nonce, err := authority.EscrowAddress(rental)
	writeAddress(w, r, addr, nonce, err)
}

// ResourceAddress derives the resource record address of ?mint=.
func (h *Handler) ResourceAddress(w http.ResponseWriter, r *http.Request) {
	mint, err := requiredQueryIdentity(r, "mint")
	if err != nil {
		writeError(w, r, err)
		return
	}
	addr, nonce, err := authority.ResourceAddress(mint)
	writeAddress(w, r, addr, nonce, err)
}
