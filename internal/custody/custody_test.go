package custody

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
	"rentby-escrow/internal/repository/memory"
	"rentby-escrow/internal/token"
)

func randomIdentity() domain.Identity {
	var id domain.Identity
	copy(id[:], frand.Bytes(domain.IdentityLen))
	return id
}

func TestExecutor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	exec := NewExecutor()

	mint := randomIdentity()
	renter, renterAcct := randomIdentity(), randomIdentity()
	owner, ownerAcct := randomIdentity(), randomIdentity()
	rental := randomIdentity()

	holding, err := authority.EscrowCapability(rental)
	require.NoError(t, err)

	require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
		if err := token.InitAccount(ctx, tx.Tokens(), renterAcct, mint, renter); err != nil {
			return err
		}
		if err := token.InitAccount(ctx, tx.Tokens(), ownerAcct, mint, owner); err != nil {
			return err
		}
		if err := token.MintTo(ctx, tx.Tokens(), renterAcct, 1000); err != nil {
			return err
		}
		return exec.OpenHolding(ctx, tx.Tokens(), holding, mint)
	}))

	balance := func(addr domain.Identity) uint64 {
		acct, err := store.Tokens().GetAccount(ctx, addr)
		require.NoError(t, err)
		return acct.Amount
	}

	t.Run("Holding account is owned by its derived identity", func(t *testing.T) {
		acct, err := store.Tokens().GetAccount(ctx, holding.Address())
		require.NoError(t, err)
		assert.Equal(t, holding.Address(), acct.Owner)
		assert.Equal(t, mint, acct.Mint)
	})

	t.Run("Deposit by a non-owner fails", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return exec.Deposit(ctx, tx.Tokens(), owner, renterAcct, holding.Address(), 1000)
		})
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	})

	t.Run("Deposit", func(t *testing.T) {
		require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
			return exec.Deposit(ctx, tx.Tokens(), renter, renterAcct, holding.Address(), 1000)
		}))
		assert.Equal(t, uint64(1000), balance(holding.Address()))
		assert.Equal(t, uint64(0), balance(renterAcct))
	})

	t.Run("A natural party cannot pull from the holding account", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return token.Transfer(ctx, tx.Tokens(), holding.Address(), renterAcct, renter, 1000, "")
		})
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	})

	t.Run("Another rental's capability cannot release", func(t *testing.T) {
		other, err := authority.EscrowCapability(randomIdentity())
		require.NoError(t, err)
		err = store.WithTx(ctx, func(tx repository.Tx) error {
			return token.Transfer(ctx, tx.Tokens(), holding.Address(), ownerAcct, other.Address(), 1000, "")
		})
		assert.ErrorIs(t, err, domain.ErrOwnerMismatch)
	})

	t.Run("Zero capability is rejected", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return exec.Release(ctx, tx.Tokens(), authority.Capability{}, ownerAcct, 1000, "")
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCapability)
	})

	t.Run("Holding account as destination", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return exec.Release(ctx, tx.Tokens(), holding, holding.Address(), 1000, "")
		})
		assert.ErrorIs(t, err, domain.ErrReleaseToHolding)
		assert.Equal(t, uint64(1000), balance(holding.Address()))
	})

	t.Run("Release", func(t *testing.T) {
		require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
			return exec.Release(ctx, tx.Tokens(), holding, ownerAcct, 1000, "escrow release")
		}))
		assert.Equal(t, uint64(0), balance(holding.Address()))
		assert.Equal(t, uint64(1000), balance(ownerAcct))
	})
}
