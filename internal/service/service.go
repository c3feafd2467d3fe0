package service

import (
	"context"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/utils"
)

// CreateRentalRequest carries the inputs of CreateRental. ResourceOwner and
// RenterTokenAccount are supplied by the caller and are not re-validated
// beyond what the token transfer itself checks.
type CreateRentalRequest struct {
	ResourceOwner      domain.Identity
	ResourceMint       domain.Identity
	RenterTokenAccount domain.Identity
	Amount             uint64
	Duration           int64
}

type CreateResourceRequest struct {
	Mint         domain.Identity
	ResourceType string
	Specs        string
	HourlyRate   uint64
}

type RentalService interface {
	CreateRental(ctx context.Context, renter domain.Identity, req CreateRentalRequest) (*domain.RentalView, error)
	CompleteRental(ctx context.Context, caller, rental, ownerTokenAccount domain.Identity) (*domain.RentalView, error)
	DisputeRental(ctx context.Context, caller, rental domain.Identity) (*domain.RentalView, error)
	ResolveDispute(ctx context.Context, caller, rental domain.Identity, refundToRenter bool, renterTokenAccount, ownerTokenAccount domain.Identity) (*domain.RentalView, error)
	GetRental(ctx context.Context, rental domain.Identity) (*domain.RentalView, error)
	ListRentals(ctx context.Context, party domain.Identity) ([]domain.RentalView, error)
}

type ResourceService interface {
	CreateResource(ctx context.Context, owner domain.Identity, req CreateResourceRequest) (*domain.ResourceView, error)
	GetResource(ctx context.Context, resource domain.Identity) (*domain.ResourceView, error)
	GetResourceByMint(ctx context.Context, mint domain.Identity) (*domain.ResourceView, error)
	ListResources(ctx context.Context, owner domain.Identity) ([]domain.ResourceView, error)
	QuoteEscrow(ctx context.Context, mint domain.Identity, durationSeconds int64) (*utils.EscrowQuote, error)
}

type LedgerService interface {
	OpenAccount(ctx context.Context, owner, mint domain.Identity) (*domain.TokenAccount, error)
	GetAccount(ctx context.Context, addr domain.Identity) (*domain.TokenAccount, error)
	ListTransfers(ctx context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error)
	Transfer(ctx context.Context, caller, from, to domain.Identity, amount uint64) error
	// Faucet credits an account with freshly minted tokens. Only enabled in
	// development deployments.
	Faucet(ctx context.Context, addr domain.Identity, amount uint64) (*domain.TokenAccount, error)
	GetStats(ctx context.Context) (*domain.Stats, error)
}
