package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/security"
	"rentby-escrow/internal/service"
)

const maxBodyBytes = 1 << 16

// Handler serves the JSON API over the rental, resource and ledger services.
type Handler struct {
	rentalSvc    service.RentalService
	resourceSvc  service.ResourceService
	ledgerSvc    service.LedgerService
	tokenManager security.TokenManager
	sessionSkew  time.Duration
	now          func() time.Time
}

func NewHandler(
	rentalSvc service.RentalService,
	resourceSvc service.ResourceService,
	ledgerSvc service.LedgerService,
	tokenManager security.TokenManager,
	sessionSkew time.Duration,
) *Handler {
	return &Handler{
		rentalSvc:    rentalSvc,
		resourceSvc:  resourceSvc,
		ledgerSvc:    ledgerSvc,
		tokenManager: tokenManager,
		sessionSkew:  sessionSkew,
		now:          time.Now,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func pathIdentity(r *http.Request, name string) (domain.Identity, error) {
	return domain.ParseIdentity(mux.Vars(r)[name])
}

// queryIdentity parses an optional identity query parameter; absent means
// the zero identity.
func queryIdentity(r *http.Request, name string) (domain.Identity, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return domain.Identity{}, nil
	}
	return domain.ParseIdentity(v)
}

func requiredQueryIdentity(r *http.Request, name string) (domain.Identity, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return domain.Identity{}, fmt.Errorf("%w: %s is required", errBadRequest, name)
	}
	return domain.ParseIdentity(v)
}

func queryInt(r *http.Request, name string, bitSize int) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errBadRequest, name, err)
	}
	return n, nil
}

func (h *Handler) caller(r *http.Request) (domain.Identity, error) {
	id, ok := CallerFromContext(r.Context())
	if !ok {
		return domain.Identity{}, security.ErrInvalidToken
	}
	return id, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
