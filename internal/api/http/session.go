package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mr-tron/base58"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/security"
)

type CreateSessionRequest struct {
	Identity  domain.Identity `json:"identity"`
	Timestamp int64           `json:"timestamp"`
	// Signature is the base58 ed25519 signature over "rentby-session:<timestamp>".
	Signature string `json:"signature"`
}

type CreateSessionResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    string    `json:"identity"`
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	sig, err := base58.Decode(req.Signature)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: signature: %v", errBadRequest, err))
		return
	}
	if err := security.VerifySession(req.Identity, req.Timestamp, sig, h.now(), h.sessionSkew); err != nil {
		writeError(w, r, err)
		return
	}
	token, expiresAt, err := h.tokenManager.GenerateAccessToken(req.Identity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSessionResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Identity:    req.Identity.String(),
	})
}
