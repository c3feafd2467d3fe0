package service

import (
	"context"
	"fmt"
	"time"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/custody"
	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/records"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/reputation"
)

// transitions lists every edge of the rental lifecycle.
var transitions = map[domain.RentalStatus][]domain.RentalStatus{
	domain.RentalStatusActive:   {domain.RentalStatusCompleted, domain.RentalStatusDisputed},
	domain.RentalStatusDisputed: {domain.RentalStatusResolved},
}

func canTransition(from, to domain.RentalStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type rentalService struct {
	store   repository.Store
	custody *custody.Executor
	now     func() time.Time
}

func NewRentalService(store repository.Store, executor *custody.Executor, now func() time.Time) RentalService {
	if now == nil {
		now = time.Now
	}
	return &rentalService{
		store:   store,
		custody: executor,
		now:     now,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, renter domain.Identity, req CreateRentalRequest) (*domain.RentalView, error) {
	logger.EnterMethod("rentalService.CreateRental", "renter", renter, "mint", req.ResourceMint, "amount", req.Amount)

	if req.Amount == 0 {
		logger.ExitMethodWithError("rentalService.CreateRental", domain.ErrZeroAmount, "renter", renter)
		return nil, domain.ErrZeroAmount
	}

	addr, nonce, err := authority.RentalAddress(renter, req.ResourceMint)
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "renter", renter)
		return nil, err
	}

	rental := &domain.RentalAgreement{
		Renter:        renter,
		ResourceOwner: req.ResourceOwner,
		ResourceMint:  req.ResourceMint,
		EscrowAmount:  req.Amount,
		StartTime:     s.now().Unix(),
		Duration:      req.Duration,
		Status:        domain.RentalStatusActive,
		Nonce:         nonce,
	}

	err = s.store.WithTx(ctx, func(tx repository.Tx) error {
		if _, _, err := records.LoadResourceByMint(ctx, tx.Records(), req.ResourceMint); err != nil {
			return fmt.Errorf("resource for mint %s: %w", req.ResourceMint, err)
		}
		if err := records.AllocateRental(ctx, tx.Records(), addr, rental); err != nil {
			return err
		}
		holding, err := authority.EscrowCapability(addr)
		if err != nil {
			return err
		}
		if err := s.custody.OpenHolding(ctx, tx.Tokens(), holding, req.ResourceMint); err != nil {
			return err
		}
		return s.custody.Deposit(ctx, tx.Tokens(), renter, req.RenterTokenAccount, holding.Address(), req.Amount)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "renter", renter, "rental", addr)
		return nil, err
	}

	view, err := records.RentalView(addr, rental)
	if err != nil {
		return nil, err
	}
	logger.Info("Rental created", "rental", addr, "amount", req.Amount, "holding", view.HoldingAccount)
	logger.ExitMethod("rentalService.CreateRental", "rental", addr)
	return view, nil
}

func (s *rentalService) CompleteRental(ctx context.Context, caller, rentalAddr, ownerTokenAccount domain.Identity) (*domain.RentalView, error) {
	logger.EnterMethod("rentalService.CompleteRental", "caller", caller, "rental", rentalAddr)

	var rental *domain.RentalAgreement
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		rental, err = s.loadForTransition(ctx, tx, caller, rentalAddr, domain.RentalStatusCompleted)
		if err != nil {
			return err
		}
		resAddr, resource, err := records.LoadResourceByMint(ctx, tx.Records(), rental.ResourceMint)
		if err != nil {
			return err
		}
		if err := reputation.ApplySuccess(resource); err != nil {
			return err
		}
		if err := s.release(ctx, tx, rentalAddr, rental, ownerTokenAccount, "rental completed"); err != nil {
			return err
		}
		if err := records.SaveResource(ctx, tx.Records(), resAddr, resource); err != nil {
			return err
		}
		rental.Status = domain.RentalStatusCompleted
		return records.SaveRental(ctx, tx.Records(), rentalAddr, rental)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.CompleteRental", err, "rental", rentalAddr)
		return nil, err
	}

	logger.RentalTransition(rentalAddr, domain.RentalStatusActive, domain.RentalStatusCompleted, "caller", caller)
	logger.ExitMethod("rentalService.CompleteRental", "rental", rentalAddr)
	return records.RentalView(rentalAddr, rental)
}

func (s *rentalService) DisputeRental(ctx context.Context, caller, rentalAddr domain.Identity) (*domain.RentalView, error) {
	logger.EnterMethod("rentalService.DisputeRental", "caller", caller, "rental", rentalAddr)

	var rental *domain.RentalAgreement
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		rental, err = s.loadForTransition(ctx, tx, caller, rentalAddr, domain.RentalStatusDisputed)
		if err != nil {
			return err
		}
		rental.Status = domain.RentalStatusDisputed
		return records.SaveRental(ctx, tx.Records(), rentalAddr, rental)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.DisputeRental", err, "rental", rentalAddr)
		return nil, err
	}

	logger.RentalTransition(rentalAddr, domain.RentalStatusActive, domain.RentalStatusDisputed, "caller", caller)
	logger.ExitMethod("rentalService.DisputeRental", "rental", rentalAddr)
	return records.RentalView(rentalAddr, rental)
}

func (s *rentalService) ResolveDispute(ctx context.Context, caller, rentalAddr domain.Identity, refundToRenter bool, renterTokenAccount, ownerTokenAccount domain.Identity) (*domain.RentalView, error) {
	logger.EnterMethod("rentalService.ResolveDispute", "caller", caller, "rental", rentalAddr, "refundToRenter", refundToRenter)

	var rental *domain.RentalAgreement
	err := s.store.WithTx(ctx, func(tx repository.Tx) error {
		var err error
		rental, err = s.loadForTransition(ctx, tx, caller, rentalAddr, domain.RentalStatusResolved)
		if err != nil {
			return err
		}
		resAddr, resource, err := records.LoadResourceByMint(ctx, tx.Records(), rental.ResourceMint)
		if err != nil {
			return err
		}
		if refundToRenter {
			reputation.ApplyPenalty(resource)
			err = s.release(ctx, tx, rentalAddr, rental, renterTokenAccount, "dispute refund")
		} else {
			if err := reputation.ApplySuccess(resource); err != nil {
				return err
			}
			err = s.release(ctx, tx, rentalAddr, rental, ownerTokenAccount, "dispute release")
		}
		if err != nil {
			return err
		}
		if err := records.SaveResource(ctx, tx.Records(), resAddr, resource); err != nil {
			return err
		}
		rental.Status = domain.RentalStatusResolved
		return records.SaveRental(ctx, tx.Records(), rentalAddr, rental)
	})
	if err != nil {
		logger.ExitMethodWithError("rentalService.ResolveDispute", err, "rental", rentalAddr)
		return nil, err
	}

	logger.RentalTransition(rentalAddr, domain.RentalStatusDisputed, domain.RentalStatusResolved, "caller", caller, "refundToRenter", refundToRenter)
	logger.ExitMethod("rentalService.ResolveDispute", "rental", rentalAddr)
	return records.RentalView(rentalAddr, rental)
}

func (s *rentalService) GetRental(ctx context.Context, rentalAddr domain.Identity) (*domain.RentalView, error) {
	rental, err := records.LoadRental(ctx, s.store.Records(), rentalAddr)
	if err != nil {
		return nil, err
	}
	return records.RentalView(rentalAddr, rental)
}

// ListRentals returns the rentals where party is renter or owner. A zero
// party lists every rental.
func (s *rentalService) ListRentals(ctx context.Context, party domain.Identity) ([]domain.RentalView, error) {
	logger.EnterMethod("rentalService.ListRentals", "party", party)
	all, err := records.ListRentals(ctx, s.store.Records())
	if err != nil {
		logger.ExitMethodWithError("rentalService.ListRentals", err, "party", party)
		return nil, err
	}
	if party.IsZero() {
		logger.ExitMethod("rentalService.ListRentals", "count", len(all))
		return all, nil
	}
	views := make([]domain.RentalView, 0)
	for _, v := range all {
		if v.IsParty(party) {
			views = append(views, v)
		}
	}
	logger.ExitMethod("rentalService.ListRentals", "party", party, "count", len(views))
	return views, nil
}

// loadForTransition loads a rental and checks that it may move to the target
// status and that caller is one of its parties. Status is checked first.
func (s *rentalService) loadForTransition(ctx context.Context, tx repository.Tx, caller, addr domain.Identity, to domain.RentalStatus) (*domain.RentalAgreement, error) {
	rental, err := records.LoadRental(ctx, tx.Records(), addr)
	if err != nil {
		return nil, err
	}
	if !canTransition(rental.Status, to) {
		if to == domain.RentalStatusResolved {
			return nil, fmt.Errorf("%w: rental %s is %s", domain.ErrNotDisputed, addr, rental.Status)
		}
		return nil, fmt.Errorf("%w: rental %s is %s", domain.ErrNotActive, addr, rental.Status)
	}
	if !rental.IsParty(caller) {
		return nil, fmt.Errorf("%w: %s is not a party to rental %s", domain.ErrUnauthorized, caller, addr)
	}
	return rental, nil
}

// release moves the full escrow amount out of the rental's holding account.
func (s *rentalService) release(ctx context.Context, tx repository.Tx, addr domain.Identity, rental *domain.RentalAgreement, to domain.Identity, memo string) error {
	holding, err := authority.EscrowCapability(addr)
	if err != nil {
		return err
	}
	return s.custody.Release(ctx, tx.Tokens(), holding, to, rental.EscrowAmount, memo)
}
