// Package token is the asset-transfer primitive: token accounts of one mint,
// owned by one identity, moved only with that identity's authority.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/repository"
)

// InitAccount opens an empty token account.
func InitAccount(ctx context.Context, repo repository.TokenRepository, addr, mint, owner domain.Identity) error {
	return repo.CreateAccount(ctx, &domain.TokenAccount{Address: addr, Mint: mint, Owner: owner})
}

// MintTo credits an account from outside the system, as a faucet would.
func MintTo(ctx context.Context, repo repository.TokenRepository, addr domain.Identity, amount uint64) error {
	acct, err := repo.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	if acct.Amount+amount < acct.Amount {
		return fmt.Errorf("%w: %s", domain.ErrBalanceOverflow, addr)
	}
	return repo.SetBalance(ctx, addr, acct.Amount+amount)
}

// Transfer moves amount from one account to another of the same mint. The
// authority must own the source account; callers are responsible for having
// verified it.
func Transfer(ctx context.Context, repo repository.TokenRepository, from, to, authority domain.Identity, amount uint64, memo string) error {
	logger.ExternalServiceCall("token", "transfer", "from", from, "to", to, "amount", amount)
	err := transfer(ctx, repo, from, to, authority, amount, memo)
	logger.ExternalServiceResult("token", "transfer", err, "from", from, "to", to, "amount", amount)
	return err
}

func transfer(ctx context.Context, repo repository.TokenRepository, from, to, authority domain.Identity, amount uint64, memo string) error {
	src, err := repo.GetAccount(ctx, from)
	if err != nil {
		return err
	}
	dst, err := repo.GetAccount(ctx, to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %s -> %s", domain.ErrMintMismatch, from, to)
	}
	if src.Owner != authority {
		return fmt.Errorf("%w: %s", domain.ErrOwnerMismatch, from)
	}
	if src.Amount < amount {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, src.Amount, amount)
	}

	if from != to {
		if dst.Amount+amount < dst.Amount {
			return fmt.Errorf("%w: %s", domain.ErrBalanceOverflow, to)
		}
		if err := repo.SetBalance(ctx, from, src.Amount-amount); err != nil {
			return err
		}
		if err := repo.SetBalance(ctx, to, dst.Amount+amount); err != nil {
			return err
		}
	}

	return repo.RecordTransfer(ctx, &domain.TokenTransfer{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Authority: authority,
		Amount:    amount,
		Memo:      memo,
		CreatedOn: time.Now().UTC(),
	})
}
