package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentby-escrow/internal/logger"
	"rentby-escrow/internal/repository"

	_ "github.com/lib/pq"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.RecordRepository
	repository.TokenRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		RecordRepository: NewRecordRepository(db),
		TokenRepository:  NewTokenRepository(db),
	}
}

func (s *Store) Records() repository.RecordRepository { return s.RecordRepository }
func (s *Store) Tokens() repository.TokenRepository   { return s.TokenRepository }

type txStore struct {
	records repository.RecordRepository
	tokens  repository.TokenRepository
}

func (t *txStore) Records() repository.RecordRepository { return t.records }
func (t *txStore) Tokens() repository.TokenRepository   { return t.tokens }

// WithTx runs fn inside a transaction. Rows read through the transaction are
// locked FOR UPDATE until it ends, so operations on the same records run one
// at a time.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txStore{
		records: &recordRepository{db: tx, lock: true},
		tokens:  &tokenRepository{db: tx, lock: true},
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS records (
	address    BYTEA PRIMARY KEY,
	kind       TEXT NOT NULL,
	data       BYTEA NOT NULL,
	created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS records_kind_idx ON records (kind);

CREATE TABLE IF NOT EXISTS token_accounts (
	address    BYTEA PRIMARY KEY,
	mint       BYTEA NOT NULL,
	owner      BYTEA NOT NULL,
	amount     NUMERIC(20, 0) NOT NULL DEFAULT 0 CHECK (amount >= 0),
	created_on TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS token_transfers (
	id         UUID PRIMARY KEY,
	from_addr  BYTEA NOT NULL,
	to_addr    BYTEA NOT NULL,
	authority  BYTEA NOT NULL,
	amount     NUMERIC(20, 0) NOT NULL,
	memo       TEXT NOT NULL DEFAULT '',
	created_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS token_transfers_from_idx ON token_transfers (from_addr);
CREATE INDEX IF NOT EXISTS token_transfers_to_idx ON token_transfers (to_addr);
`

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("migrate", "CREATE TABLE IF NOT EXISTS ...")
	_, err := db.ExecContext(ctx, schema)
	logger.DatabaseResult("migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
