package repository

import (
	"context"

	"rentby-escrow/internal/domain"
)

// Record is a raw persisted record, addressed by its derived identity.
type Record struct {
	Address domain.Identity
	Kind    string
	Data    []byte
}

type RecordRepository interface {
	// Allocate stores a new record and fails with domain.ErrRecordExists if
	// the address is taken.
	Allocate(ctx context.Context, rec *Record) error
	Get(ctx context.Context, addr domain.Identity) (*Record, error)
	// Put writes back an existing record. Its size and kind never change.
	Put(ctx context.Context, addr domain.Identity, data []byte) error
	ListByKind(ctx context.Context, kind string) ([]Record, error)
}

type TokenRepository interface {
	CreateAccount(ctx context.Context, acct *domain.TokenAccount) error
	GetAccount(ctx context.Context, addr domain.Identity) (*domain.TokenAccount, error)
	SetBalance(ctx context.Context, addr domain.Identity, amount uint64) error
	RecordTransfer(ctx context.Context, tr *domain.TokenTransfer) error
	ListTransfers(ctx context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error)
}

// Tx is one unit of work. Everything written through it commits together or
// not at all.
type Tx interface {
	Records() RecordRepository
	Tokens() TokenRepository
}

// Store serializes units of work against the same records and makes each
// one atomic. Its own Records and Tokens read outside any unit of work.
type Store interface {
	Tx
	WithTx(ctx context.Context, fn func(tx Tx) error) error
}
