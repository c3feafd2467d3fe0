package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
)

type tokenRepository struct {
	db   querier
	lock bool
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

// Amounts are uint64 and stored as NUMERIC(20,0); they cross the driver as
// decimal strings because database/sql rejects uint64 values above MaxInt64.
func formatAmount(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func parseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stored amount %q: %w", s, err)
	}
	return v, nil
}

func (r *tokenRepository) CreateAccount(ctx context.Context, acct *domain.TokenAccount) error {
	query := `INSERT INTO token_accounts (address, mint, owner, amount, created_on, updated_on) 
	          VALUES ($1, $2, $3, $4, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query, acct.Address.Bytes(), acct.Mint.Bytes(), acct.Owner.Bytes(), formatAmount(acct.Amount))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, acct.Address)
		}
		return err
	}
	return nil
}

func (r *tokenRepository) GetAccount(ctx context.Context, addr domain.Identity) (*domain.TokenAccount, error) {
	query := `SELECT address, mint, owner, amount::TEXT FROM token_accounts WHERE address = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}
	var (
		address, mint, owner []byte
		amount               string
	)
	err := r.db.QueryRowContext(ctx, query, addr.Bytes()).Scan(&address, &mint, &owner, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
	} else if err != nil {
		return nil, err
	}
	acct := &domain.TokenAccount{}
	copy(acct.Address[:], address)
	copy(acct.Mint[:], mint)
	copy(acct.Owner[:], owner)
	if acct.Amount, err = parseAmount(amount); err != nil {
		return nil, err
	}
	return acct, nil
}

func (r *tokenRepository) SetBalance(ctx context.Context, addr domain.Identity, amount uint64) error {
	query := `UPDATE token_accounts SET amount = $1, updated_on = NOW() WHERE address = $2`
	res, err := r.db.ExecContext(ctx, query, formatAmount(amount), addr.Bytes())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
	}
	return nil
}

func (r *tokenRepository) RecordTransfer(ctx context.Context, tr *domain.TokenTransfer) error {
	query := `INSERT INTO token_transfers (id, from_addr, to_addr, authority, amount, memo, created_on) 
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, tr.ID, tr.From.Bytes(), tr.To.Bytes(), tr.Authority.Bytes(), formatAmount(tr.Amount), tr.Memo, tr.CreatedOn)
	return err
}

func (r *tokenRepository) ListTransfers(ctx context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error) {
	query := `SELECT id, from_addr, to_addr, authority, amount::TEXT, memo, created_on 
	          FROM token_transfers WHERE from_addr = $1 OR to_addr = $1 ORDER BY created_on DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, addr.Bytes(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []domain.TokenTransfer
	for rows.Next() {
		var (
			tr                  domain.TokenTransfer
			from, to, authority []byte
			amount              string
		)
		if err := rows.Scan(&tr.ID, &from, &to, &authority, &amount, &tr.Memo, &tr.CreatedOn); err != nil {
			return nil, err
		}
		copy(tr.From[:], from)
		copy(tr.To[:], to)
		copy(tr.Authority[:], authority)
		if tr.Amount, err = parseAmount(amount); err != nil {
			return nil, err
		}
		transfers = append(transfers, tr)
	}
	return transfers, rows.Err()
}
