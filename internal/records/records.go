// Package records reads and writes typed rental and resource records through
// a RecordRepository. Every load re-derives the record's address from its
// persisted nonce before the record is trusted.
package records

import (
	"context"
	"fmt"

	"rentby-escrow/internal/authority"
	"rentby-escrow/internal/codec"
	"rentby-escrow/internal/domain"
	"rentby-escrow/internal/repository"
)

func AllocateRental(ctx context.Context, repo repository.RecordRepository, addr domain.Identity, r *domain.RentalAgreement) error {
	data, err := codec.EncodeRental(r)
	if err != nil {
		return err
	}
	return repo.Allocate(ctx, &repository.Record{Address: addr, Kind: string(codec.KindRentalAgreement), Data: data})
}

func LoadRental(ctx context.Context, repo repository.RecordRepository, addr domain.Identity) (*domain.RentalAgreement, error) {
	rec, err := repo.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return decodeRental(rec)
}

func SaveRental(ctx context.Context, repo repository.RecordRepository, addr domain.Identity, r *domain.RentalAgreement) error {
	data, err := codec.EncodeRental(r)
	if err != nil {
		return err
	}
	return repo.Put(ctx, addr, data)
}

func decodeRental(rec *repository.Record) (*domain.RentalAgreement, error) {
	r, err := codec.DecodeRental(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("rental %s: %w", rec.Address, err)
	}
	if err := authority.VerifyRentalNonce(rec.Address, r); err != nil {
		return nil, err
	}
	return r, nil
}

func AllocateResource(ctx context.Context, repo repository.RecordRepository, addr domain.Identity, r *domain.Resource) error {
	data, err := codec.EncodeResource(r)
	if err != nil {
		return err
	}
	return repo.Allocate(ctx, &repository.Record{Address: addr, Kind: string(codec.KindResource), Data: data})
}

func LoadResource(ctx context.Context, repo repository.RecordRepository, addr domain.Identity) (*domain.Resource, error) {
	rec, err := repo.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return decodeResource(rec)
}

// LoadResourceByMint loads the resource record derived from mint.
func LoadResourceByMint(ctx context.Context, repo repository.RecordRepository, mint domain.Identity) (domain.Identity, *domain.Resource, error) {
	addr, _, err := authority.ResourceAddress(mint)
	if err != nil {
		return domain.Identity{}, nil, err
	}
	r, err := LoadResource(ctx, repo, addr)
	return addr, r, err
}

func SaveResource(ctx context.Context, repo repository.RecordRepository, addr domain.Identity, r *domain.Resource) error {
	data, err := codec.EncodeResource(r)
	if err != nil {
		return err
	}
	return repo.Put(ctx, addr, data)
}

func decodeResource(rec *repository.Record) (*domain.Resource, error) {
	r, err := codec.DecodeResource(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("resource %s: %w", rec.Address, err)
	}
	if err := authority.VerifyResourceNonce(rec.Address, r); err != nil {
		return nil, err
	}
	return r, nil
}

// RentalView decorates a rental with its address and holding account.
func RentalView(addr domain.Identity, r *domain.RentalAgreement) (*domain.RentalView, error) {
	holding, _, err := authority.EscrowAddress(addr)
	if err != nil {
		return nil, err
	}
	return &domain.RentalView{Address: addr, HoldingAccount: holding, RentalAgreement: *r}, nil
}

func ListRentals(ctx context.Context, repo repository.RecordRepository) ([]domain.RentalView, error) {
	recs, err := repo.ListByKind(ctx, string(codec.KindRentalAgreement))
	if err != nil {
		return nil, err
	}
	views := make([]domain.RentalView, 0, len(recs))
	for i := range recs {
		r, err := decodeRental(&recs[i])
		if err != nil {
			return nil, err
		}
		v, err := RentalView(recs[i].Address, r)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func ListResources(ctx context.Context, repo repository.RecordRepository) ([]domain.ResourceView, error) {
	recs, err := repo.ListByKind(ctx, string(codec.KindResource))
	if err != nil {
		return nil, err
	}
	views := make([]domain.ResourceView, 0, len(recs))
	for i := range recs {
		r, err := decodeResource(&recs[i])
		if err != nil {
			return nil, err
		}
		views = append(views, domain.ResourceView{Address: recs[i].Address, Resource: *r})
	}
	return views, nil
}
