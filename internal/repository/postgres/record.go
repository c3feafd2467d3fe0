package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
)

const uniqueViolation = "23505"

type recordRepository struct {
	db   querier
	lock bool
}

func NewRecordRepository(db *sql.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Allocate(ctx context.Context, rec *repository.Record) error {
	query := `INSERT INTO records (address, kind, data, created_on, updated_on) VALUES ($1, $2, $3, NOW(), NOW())`
	_, err := r.db.ExecContext(ctx, query, rec.Address.Bytes(), rec.Kind, rec.Data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrRecordExists, rec.Address)
		}
		return err
	}
	return nil
}

func (r *recordRepository) Get(ctx context.Context, addr domain.Identity) (*repository.Record, error) {
	query := `SELECT address, kind, data FROM records WHERE address = $1`
	if r.lock {
		query += ` FOR UPDATE`
	}
	var (
		rec     repository.Record
		address []byte
	)
	err := r.db.QueryRowContext(ctx, query, addr.Bytes()).Scan(&address, &rec.Kind, &rec.Data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRecordNotFound, addr)
	} else if err != nil {
		return nil, err
	}
	copy(rec.Address[:], address)
	return &rec, nil
}

func (r *recordRepository) Put(ctx context.Context, addr domain.Identity, data []byte) error {
	query := `UPDATE records SET data = $1, updated_on = NOW() WHERE address = $2 AND length(data) = $3`
	res, err := r.db.ExecContext(ctx, query, data, addr.Bytes(), len(data))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, addr)
	}
	return nil
}

func (r *recordRepository) ListByKind(ctx context.Context, kind string) ([]repository.Record, error) {
	query := `SELECT address, kind, data FROM records WHERE kind = $1 ORDER BY created_on ASC`
	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []repository.Record
	for rows.Next() {
		var (
			rec     repository.Record
			address []byte
		)
		if err := rows.Scan(&address, &rec.Kind, &rec.Data); err != nil {
			return nil, err
		}
		copy(rec.Address[:], address)
		records = append(records, rec)
	}
	return records, rows.Err()
}
