package jobs

import (
	"context"
	"errors"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
)

// EscrowMismatch is a holding account whose balance disagrees with its
// rental's status.
type EscrowMismatch struct {
	Rental   domain.Identity
	Holding  domain.Identity
	Status   domain.RentalStatus
	Expected uint64
	Actual   uint64
}

// ReconcileEscrow checks that every open rental's holding account holds
// exactly the escrow amount and every settled one holds nothing.
func (jr *JobRunner) ReconcileEscrow() {
	jr.runWithRecovery("ReconcileEscrow", func(ctx context.Context) error {
		_, err := jr.reconcileEscrow(ctx)
		return err
	})
}

func (jr *JobRunner) reconcileEscrow(ctx context.Context) ([]EscrowMismatch, error) {
	rentals, err := jr.services.Rental.ListRentals(ctx, domain.Identity{})
	if err != nil {
		return nil, err
	}

	var mismatches []EscrowMismatch
	var held uint64
	for _, r := range rentals {
		expected := r.EscrowAmount
		if r.Status.Terminal() {
			expected = 0
		}

		var actual uint64
		acct, err := jr.services.Ledger.GetAccount(ctx, r.HoldingAccount)
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
		case err != nil:
			return mismatches, err
		default:
			actual = acct.Amount
		}

		if actual != expected {
			m := EscrowMismatch{Rental: r.Address, Holding: r.HoldingAccount, Status: r.Status, Expected: expected, Actual: actual}
			logger.Warn("Escrow balance mismatch",
				"rental", m.Rental,
				"holding", m.Holding,
				"status", m.Status,
				"expected", m.Expected,
				"actual", m.Actual)
			mismatches = append(mismatches, m)
			continue
		}
		held += actual
	}

	logger.Info("Escrow reconciled",
		"rentals", len(rentals),
		"mismatches", len(mismatches),
		"total_held", held)
	return mismatches, nil
}

// ReportElapsedRentals logs active rentals whose recorded duration has
// passed. Duration is advisory, so nothing is changed.
func (jr *JobRunner) ReportElapsedRentals() {
	jr.runWithRecovery("ReportElapsedRentals", func(ctx context.Context) error {
		_, err := jr.reportElapsedRentals(ctx)
		return err
	})
}

func (jr *JobRunner) reportElapsedRentals(ctx context.Context) ([]domain.RentalView, error) {
	rentals, err := jr.services.Rental.ListRentals(ctx, domain.Identity{})
	if err != nil {
		return nil, err
	}

	now := jr.now().Unix()
	var elapsed []domain.RentalView
	for _, r := range rentals {
		if r.Status != domain.RentalStatusActive || r.EndTime() > now {
			continue
		}
		logger.Info("Rental past its recorded duration",
			"rental", r.Address,
			"renter", r.Renter,
			"owner", r.ResourceOwner,
			"end_time", r.EndTime())
		elapsed = append(elapsed, r)
	}

	logger.Info("Elapsed rentals reported", "count", len(elapsed))
	return elapsed, nil
}
