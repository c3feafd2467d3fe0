package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
)

func randomIdentity() domain.Identity {
	var id domain.Identity
	copy(id[:], frand.Bytes(domain.IdentityLen))
	return id
}

func TestStore_WithTx(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	addr := randomIdentity()

	t.Run("Commit", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			if err := tx.Records().Allocate(ctx, &repository.Record{Address: addr, Kind: "Resource", Data: []byte{1, 2}}); err != nil {
				return err
			}
			return tx.Tokens().CreateAccount(ctx, &domain.TokenAccount{Address: addr, Amount: 10})
		})
		require.NoError(t, err)

		rec, err := store.Records().Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, rec.Data)
		acct, err := store.Tokens().GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), acct.Amount)
	})

	t.Run("Rollback discards every write", func(t *testing.T) {
		failure := errors.New("boom")
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			if err := tx.Records().Put(ctx, addr, []byte{9, 9}); err != nil {
				return err
			}
			if err := tx.Tokens().SetBalance(ctx, addr, 0); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		rec, err := store.Records().Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2}, rec.Data)
		acct, err := store.Tokens().GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), acct.Amount)
	})

	t.Run("Duplicate allocation", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return tx.Records().Allocate(ctx, &repository.Record{Address: addr, Kind: "Resource", Data: []byte{0, 0}})
		})
		assert.ErrorIs(t, err, domain.ErrRecordExists)
	})

	t.Run("Put cannot resize", func(t *testing.T) {
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			return tx.Records().Put(ctx, addr, []byte{1, 2, 3})
		})
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("Writes outside a unit of work are rejected", func(t *testing.T) {
		err := store.Tokens().SetBalance(ctx, addr, 1)
		assert.Error(t, err)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		called := false
		err := store.WithTx(cctx, func(tx repository.Tx) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})
}

func TestRecords_ListByKind(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a, b, c := randomIdentity(), randomIdentity(), randomIdentity()

	require.NoError(t, store.WithTx(ctx, func(tx repository.Tx) error {
		for _, rec := range []repository.Record{
			{Address: a, Kind: "RentalAgreement", Data: []byte{1}},
			{Address: b, Kind: "Resource", Data: []byte{2}},
			{Address: c, Kind: "RentalAgreement", Data: []byte{3}},
		} {
			if err := tx.Records().Allocate(ctx, &rec); err != nil {
				return err
			}
		}
		return nil
	}))

	recs, err := store.Records().ListByKind(ctx, "RentalAgreement")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, a, recs[0].Address)
	assert.Equal(t, c, recs[1].Address)
}
