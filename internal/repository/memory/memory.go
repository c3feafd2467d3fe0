// Package memory is an in-process Store. Units of work run one at a time
// against a copy of the state, which replaces the live state only when the
// unit succeeds.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
)

type state struct {
	records   map[domain.Identity]repository.Record
	order     []domain.Identity
	accounts  map[domain.Identity]domain.TokenAccount
	transfers []domain.TokenTransfer
}

func newState() *state {
	return &state{
		records:  make(map[domain.Identity]repository.Record),
		accounts: make(map[domain.Identity]domain.TokenAccount),
	}
}

// clone copies maps and slices. Record data is never mutated in place, so
// the byte slices are shared.
func (s *state) clone() *state {
	c := &state{
		records:   make(map[domain.Identity]repository.Record, len(s.records)),
		order:     append([]domain.Identity(nil), s.order...),
		accounts:  make(map[domain.Identity]domain.TokenAccount, len(s.accounts)),
		transfers: append([]domain.TokenTransfer(nil), s.transfers...),
	}
	for k, v := range s.records {
		c.records[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	return c
}

type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

func (s *Store) Records() repository.RecordRepository {
	return &records{view: s.read}
}

func (s *Store) Tokens() repository.TokenRepository {
	return &tokens{view: s.read}
}

// read runs fn under the read lock. Writes outside WithTx are rejected.
func (s *Store) read(write bool, fn func(st *state) error) error {
	if write {
		return fmt.Errorf("memory store: write outside unit of work")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

type tx struct {
	st *state
}

func (t *tx) view(_ bool, fn func(st *state) error) error { return fn(t.st) }

func (t *tx) Records() repository.RecordRepository { return &records{view: t.view} }
func (t *tx) Tokens() repository.TokenRepository   { return &tokens{view: t.view} }

func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := &tx{st: s.state.clone()}
	if err := fn(work); err != nil {
		return err
	}
	s.state = work.st
	return nil
}

type viewFunc func(write bool, fn func(st *state) error) error

type records struct {
	view viewFunc
}

func (r *records) Allocate(_ context.Context, rec *repository.Record) error {
	return r.view(true, func(st *state) error {
		if _, ok := st.records[rec.Address]; ok {
			return fmt.Errorf("%w: %s", domain.ErrRecordExists, rec.Address)
		}
		st.records[rec.Address] = repository.Record{
			Address: rec.Address,
			Kind:    rec.Kind,
			Data:    append([]byte(nil), rec.Data...),
		}
		st.order = append(st.order, rec.Address)
		return nil
	})
}

func (r *records) Get(_ context.Context, addr domain.Identity) (*repository.Record, error) {
	var out *repository.Record
	err := r.view(false, func(st *state) error {
		rec, ok := st.records[addr]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, addr)
		}
		rec.Data = append([]byte(nil), rec.Data...)
		out = &rec
		return nil
	})
	return out, err
}

func (r *records) Put(_ context.Context, addr domain.Identity, data []byte) error {
	return r.view(true, func(st *state) error {
		rec, ok := st.records[addr]
		if !ok || len(rec.Data) != len(data) {
			return fmt.Errorf("%w: %s", domain.ErrRecordNotFound, addr)
		}
		rec.Data = append([]byte(nil), data...)
		st.records[addr] = rec
		return nil
	})
}

func (r *records) ListByKind(_ context.Context, kind string) ([]repository.Record, error) {
	var out []repository.Record
	err := r.view(false, func(st *state) error {
		for _, addr := range st.order {
			if rec := st.records[addr]; rec.Kind == kind {
				rec.Data = append([]byte(nil), rec.Data...)
				out = append(out, rec)
			}
		}
		return nil
	})
	return out, err
}

type tokens struct {
	view viewFunc
}

func (t *tokens) CreateAccount(_ context.Context, acct *domain.TokenAccount) error {
	return t.view(true, func(st *state) error {
		if _, ok := st.accounts[acct.Address]; ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountExists, acct.Address)
		}
		st.accounts[acct.Address] = *acct
		return nil
	})
}

func (t *tokens) GetAccount(_ context.Context, addr domain.Identity) (*domain.TokenAccount, error) {
	var out *domain.TokenAccount
	err := t.view(false, func(st *state) error {
		acct, ok := st.accounts[addr]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
		}
		out = &acct
		return nil
	})
	return out, err
}

func (t *tokens) SetBalance(_ context.Context, addr domain.Identity, amount uint64) error {
	return t.view(true, func(st *state) error {
		acct, ok := st.accounts[addr]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr)
		}
		acct.Amount = amount
		st.accounts[addr] = acct
		return nil
	})
}

func (t *tokens) RecordTransfer(_ context.Context, tr *domain.TokenTransfer) error {
	return t.view(true, func(st *state) error {
		st.transfers = append(st.transfers, *tr)
		return nil
	})
}

func (t *tokens) ListTransfers(_ context.Context, addr domain.Identity, limit int32) ([]domain.TokenTransfer, error) {
	var out []domain.TokenTransfer
	err := t.view(false, func(st *state) error {
		for _, tr := range st.transfers {
			if tr.From == addr || tr.To == addr {
				out = append(out, tr)
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	if limit > 0 && int(limit) < len(out) {
		out = out[:limit]
	}
	return out, err
}
