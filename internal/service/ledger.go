package service

import (
	"context"
	"math"

	"lukechampine.com/frand"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/records"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/token"
)

const defaultTransferLimit = 50

type ledgerService struct {
	store         repository.Store
	faucetEnabled bool
}

func NewLedgerService(store repository.Store, faucetEnabled bool) LedgerService {
	return &ledgerService{store: store, faucetEnabled: faucetEnabled}
}

// OpenAccount opens an empty token account at a fresh random address.
func (s *ledgerService) OpenAccount(ctx context.Context, owner, mint domain.Identity) (*domain.TokenAccount, error) {
	logger.EnterMethod("ledgerService.OpenAccount", "owner", owner, "mint", mint)

	var addr domain.Identity
	frand.Read(addr[:])

	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return token.InitAccount(ctx, tx.Tokens(), addr, mint, owner)
	})
	if err != nil {
		logger.ExitMethodWithError("ledgerService.OpenAccount", err, "owner", owner)
		return nil, err
	}

	logger.ExitMethod("ledgerService.OpenAccount", "account", addr)
	return &domain.TokenAccount{Address: addr, Mint: mint, Owner: owner}, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, addr domain.Identity) (*domain.TokenAccount, error) {
	return s.store.Tokens().GetAccount(ctx, addr)
}

func (s *ledgerService) ListTransfers(ctx context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error) {
	if limit <= 0 {
		limit = defaultTransferLimit
	}
	return s.store.Tokens().ListTransfers(ctx, addr, limit)
}

// Transfer moves tokens between two accounts on behalf of caller, who must
// own the source account.
func (s *ledgerService) Transfer(ctx context.Context, caller, from, to domain.Identity, amount uint64) error {
	logger.EnterMethod("ledgerService.Transfer", "caller", caller, "from", from, "to", to, "amount", amount)
	if amount == 0 {
		logger.ExitMethodWithError("ledgerService.Transfer", domain.ErrZeroAmount)
		return domain.ErrZeroAmount
	}
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		return token.Transfer(ctx, tx.Tokens(), from, to, caller, amount, "transfer")
	})
	if err != nil {
		logger.ExitMethodWithError("ledgerService.Transfer", err, "from", from, "to", to)
		return err
	}
	logger.ExitMethod("ledgerService.Transfer", "from", from, "to", to)
	return nil
}

func (s *ledgerService) Faucet(ctx context.Context, addr domain.Identity, amount uint64) (*domain.TokenAccount, error) {
	logger.EnterMethod("ledgerService.Faucet", "account", addr, "amount", amount)
	if !s.faucetEnabled {
		logger.ExitMethodWithError("ledgerService.Faucet", domain.ErrFaucetDisabled)
		return nil, domain.ErrFaucetDisabled
	}

	var acct *domain.TokenAccount
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := token.MintTo(ctx, tx.Tokens(), addr, amount); err != nil {
			return err
		}
		var err error
		acct, err = tx.Tokens().GetAccount(ctx, addr)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("ledgerService.Faucet", err, "account", addr)
		return nil, err
	}
	logger.ExitMethod("ledgerService.Faucet", "account", addr, "balance", acct.Amount)
	return acct, nil
}

// GetStats counts records by kind and status. The average reputation is
// rounded to one decimal place.
func (s *ledgerService) GetStats(ctx context.Context) (*domain.Stats, error) {
	logger.EnterMethod("ledgerService.GetStats")

	rentals, err := records.ListRentals(ctx, s.store.Records())
	if err != nil {
		logger.ExitMethodWithError("ledgerService.GetStats", err)
		return nil, err
	}
	resources, err := records.ListResources(ctx, s.store.Records())
	if err != nil {
		logger.ExitMethodWithError("ledgerService.GetStats", err)
		return nil, err
	}

	stats := &domain.Stats{
		TotalRentals:   int32(len(rentals)),
		TotalResources: int32(len(resources)),
	}
	for _, r := range rentals {
		switch r.Status {
		case domain.RentalStatusActive:
			stats.ActiveRentals++
		case domain.RentalStatusCompleted:
			stats.CompletedRentals++
		case domain.RentalStatusDisputed:
			stats.DisputedRentals++
		case domain.RentalStatusResolved:
			stats.ResolvedRentals++
		}
	}
	if len(resources) > 0 {
		var sum int64
		for _, r := range resources {
			sum += int64(r.Reputation)
		}
		avg := float64(sum) / float64(len(resources))
		stats.AverageReputation = math.Round(avg*10) / 10
	}

	logger.ExitMethod("ledgerService.GetStats", "rentals", stats.TotalRentals, "resources", stats.TotalResources)
	return stats, nil
}
