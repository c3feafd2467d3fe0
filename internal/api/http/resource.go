package http

import (
	"net/http"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/service"
)

type CreateResourceRequest struct {
	Mint         domain.Identity `json:"mint"`
	ResourceType string          `json:"resource_type"`
	Specs        string          `json:"specs"`
	HourlyRate   uint64          `json:"hourly_rate"`
}

type ListResourcesResponse struct {
	Resources []domain.ResourceView `json:"resources"`
}

func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	caller, err := h.caller(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req CreateResourceRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resource, err := h.resourceSvc.CreateResource(r.Context(), caller, service.CreateResourceRequest{
		Mint:         req.Mint,
		ResourceType: req.ResourceType,
		Specs:        req.Specs,
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resource)
}

func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	addr, err := pathIdentity(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	resource, err := h.resourceSvc.GetResource(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

// ListResources lists every resource, or only those of ?owner=.
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	owner, err := queryIdentity(r, "owner")
	if err != nil {
		writeError(w, r, err)
		return
	}
	resources, err := h.resourceSvc.ListResources(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if resources == nil {
		resources = []domain.ResourceView{}
	}
	writeJSON(w, http.StatusOK, ListResourcesResponse{Resources: resources})
}

// QuoteEscrow suggests an escrow amount for renting ?mint= for ?duration=
// seconds.
func (h *Handler) QuoteEscrow(w http.ResponseWriter, r *http.Request) {
	mint, err := requiredQueryIdentity(r, "mint")
	if err != nil {
		writeError(w, r, err)
		return
	}
	duration, err := queryInt(r, "duration", 64)
	if err != nil {
		writeError(w, r, err)
		return
	}
	quote, err := h.resourceSvc.QuoteEscrow(r.Context(), mint, duration)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
