package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every API route. Route names are the keys of
// config.EndpointSecurityConfig.
func NewRouter(h *Handler, auth *AuthMiddleware) *mux.Router {
	router := mux.NewRouter()
	router.Use(Recoverer, RequestLogger, auth.Middleware)

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet).Name("Health")

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost).Name("CreateSession")
	v1.HandleFunc("/stats", h.GetStats).Methods(http.MethodGet).Name("GetStats")

	v1.HandleFunc("/resources", h.CreateResource).Methods(http.MethodPost).Name("CreateResource")
	v1.HandleFunc("/resources", h.ListResources).Methods(http.MethodGet).Name("ListResources")
	v1.HandleFunc("/resources/{address}", h.GetResource).Methods(http.MethodGet).Name("GetResource")
	v1.HandleFunc("/quote", h.QuoteEscrow).Methods(http.MethodGet).Name("QuoteEscrow")

	v1.HandleFunc("/rentals", h.CreateRental).Methods(http.MethodPost).Name("CreateRental")
	v1.HandleFunc("/rentals", h.ListMyRentals).Methods(http.MethodGet).Name("ListMyRentals")
	v1.HandleFunc("/rentals/{address}", h.GetRental).Methods(http.MethodGet).Name("GetRental")
	v1.HandleFunc("/rentals/{address}/complete", h.CompleteRental).Methods(http.MethodPost).Name("CompleteRental")
	v1.HandleFunc("/rentals/{address}/dispute", h.DisputeRental).Methods(http.MethodPost).Name("DisputeRental")
	v1.HandleFunc("/rentals/{address}/resolve", h.ResolveDispute).Methods(http.MethodPost).Name("ResolveDispute")

	v1.HandleFunc("/accounts", h.OpenAccount).Methods(http.MethodPost).Name("OpenAccount")
	v1.HandleFunc("/accounts/{address}", h.GetAccount).Methods(http.MethodGet).Name("GetAccount")
	v1.HandleFunc("/accounts/{address}/transfers", h.ListTransfers).Methods(http.MethodGet).Name("ListTransfers")
	v1.HandleFunc("/accounts/{address}/faucet", h.Faucet).Methods(http.MethodPost).Name("Faucet")
	v1.HandleFunc("/transfers", h.Transfer).Methods(http.MethodPost).Name("Transfer")

	v1.HandleFunc("/addresses/rental", h.RentalAddress).Methods(http.MethodGet).Name("RentalAddress")
	v1.HandleFunc("/addresses/escrow", h.EscrowAddress).Methods(http.MethodGet).Name("EscrowAddress")
	v1.HandleFunc("/addresses/resource", h.ResourceAddress).Methods(http.MethodGet).Name("ResourceAddress")

	return router
}
