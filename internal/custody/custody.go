// Package custody moves funds into and out of rental holding accounts.
// Deposits are authorized by the paying party; releases only by the
// holding account's derived capability.
package custody

import (
	"context"
	"fmt"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/token"
)

type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

// OpenHolding creates the holding account for a rental. The account lives at
// the capability's address and is owned by that same address.
func (e *Executor) OpenHolding(ctx context.Context, tokens repository.TokenRepository, holding authority.Capability, mint domain.Identity) error {
	if err := holding.Verify(); err != nil {
		return err
	}
	return token.InitAccount(ctx, tokens, holding.Address(), mint, holding.Address())
}

// Deposit moves amount from the payer's own account into a holding account.
// payer is the identity the execution environment verified for this call.
func (e *Executor) Deposit(ctx context.Context, tokens repository.TokenRepository, payer, from, holding domain.Identity, amount uint64) error {
	return token.Transfer(ctx, tokens, from, holding, payer, amount, "escrow deposit")
}

// Release moves amount out of the holding account signed for by holding.
// The destination is an untrusted parameter: apart from not being the holding
// account itself, only the transfer primitive's own checks apply to it.
func (e *Executor) Release(ctx context.Context, tokens repository.TokenRepository, holding authority.Capability, to domain.Identity, amount uint64, memo string) error {
	if err := holding.Verify(); err != nil {
		return fmt.Errorf("release from %s: %w", holding.Address(), err)
	}
	if to == holding.Address() {
		return fmt.Errorf("%w: %s", domain.ErrReleaseToHolding, to)
	}
	return token.Transfer(ctx, tokens, holding.Address(), to, holding.Address(), amount, memo)
}
