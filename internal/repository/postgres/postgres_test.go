package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
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

func TestRecordRepository_Allocate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRecordRepository(db)
	ctx := context.Background()
	rec := &repository.Record{Address: randomIdentity(), Kind: "Resource", Data: []byte{1, 2, 3}}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO records").
			WithArgs(rec.Address.Bytes(), rec.Kind, rec.Data).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Allocate(ctx, rec))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already allocated", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO records").
			WithArgs(rec.Address.Bytes(), rec.Kind, rec.Data).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Allocate(ctx, rec)
		assert.ErrorIs(t, err, domain.ErrRecordExists)
	})
}

func TestRecordRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRecordRepository(db)
	ctx := context.Background()
	addr := randomIdentity()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"address", "kind", "data"}).
			AddRow(addr.Bytes(), "RentalAgreement", []byte{9, 9})
		mock.ExpectQuery("SELECT address, kind, data FROM records WHERE address = \\$1").
			WithArgs(addr.Bytes()).
			WillReturnRows(rows)

		rec, err := repo.Get(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, addr, rec.Address)
		assert.Equal(t, "RentalAgreement", rec.Kind)
		assert.Equal(t, []byte{9, 9}, rec.Data)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT address, kind, data FROM records").
			WithArgs(addr.Bytes()).
			WillReturnRows(sqlmock.NewRows([]string{"address", "kind", "data"}))

		_, err := repo.Get(ctx, addr)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestRecordRepository_Put(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRecordRepository(db)
	ctx := context.Background()
	addr := randomIdentity()
	data := []byte{4, 5, 6}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE records SET data").
			WithArgs(data, addr.Bytes(), 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Put(ctx, addr, data))
	})

	t.Run("Missing record", func(t *testing.T) {
		mock.ExpectExec("UPDATE records SET data").
			WithArgs(data, addr.Bytes(), 3).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Put(ctx, addr, data), domain.ErrRecordNotFound)
	})
}

func TestTokenRepository_GetAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTokenRepository(db)
	ctx := context.Background()
	addr, mint, owner := randomIdentity(), randomIdentity(), randomIdentity()

	t.Run("Full uint64 range", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"address", "mint", "owner", "amount"}).
			AddRow(addr.Bytes(), mint.Bytes(), owner.Bytes(), "18446744073709551615")
		mock.ExpectQuery("SELECT address, mint, owner, amount::TEXT FROM token_accounts").
			WithArgs(addr.Bytes()).
			WillReturnRows(rows)

		acct, err := repo.GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, mint, acct.Mint)
		assert.Equal(t, owner, acct.Owner)
		assert.Equal(t, ^uint64(0), acct.Amount)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT address, mint, owner, amount::TEXT FROM token_accounts").
			WithArgs(addr.Bytes()).
			WillReturnRows(sqlmock.NewRows([]string{"address", "mint", "owner", "amount"}))

		_, err := repo.GetAccount(ctx, addr)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestTokenRepository_RecordTransfer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewTokenRepository(db)
	tr := &domain.TokenTransfer{
		ID:        "0b5f4b5e-2f55-4a43-9d4b-3d8b0e8c2b11",
		From:      randomIdentity(),
		To:        randomIdentity(),
		Authority: randomIdentity(),
		Amount:    1000,
		Memo:      "release",
		CreatedOn: time.Now(),
	}

	mock.ExpectExec("INSERT INTO token_transfers").
		WithArgs(tr.ID, tr.From.Bytes(), tr.To.Bytes(), tr.Authority.Bytes(), "1000", tr.Memo, tr.CreatedOn).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.RecordTransfer(context.Background(), tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()
	addr := randomIdentity()

	t.Run("Commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT address, kind, data FROM records WHERE address = \\$1 FOR UPDATE").
			WithArgs(addr.Bytes()).
			WillReturnRows(sqlmock.NewRows([]string{"address", "kind", "data"}).AddRow(addr.Bytes(), "Resource", []byte{1}))
		mock.ExpectExec("UPDATE records SET data").
			WithArgs([]byte{2}, addr.Bytes(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithTx(ctx, func(tx repository.Tx) error {
			if _, err := tx.Records().Get(ctx, addr); err != nil {
				return err
			}
			return tx.Records().Put(ctx, addr, []byte{2})
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rollback on error", func(t *testing.T) {
		failure := errors.New("transfer failed")
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE token_accounts SET amount").
			WithArgs("5", addr.Bytes()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err := store.WithTx(ctx, func(tx repository.Tx) error {
			if err := tx.Tokens().SetBalance(ctx, addr, 5); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
