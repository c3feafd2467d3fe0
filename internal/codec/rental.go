package codec

import (
	"fmt"

	"rentby-escrow/internal/domain"
)

// EncodeRental lays out a rental agreement in its 130-byte record form.
func EncodeRental(r *domain.RentalAgreement) ([]byte, error) {
	if !r.Status.Valid() {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCorruptRecord, r.Status)
	}
	e := newEncoder(KindRentalAgreement)
	e.identity(r.Renter)
	e.identity(r.ResourceOwner)
	e.identity(r.ResourceMint)
	e.uint64(r.EscrowAmount)
	e.int64(r.StartTime)
	e.int64(r.Duration)
	e.uint8(uint8(r.Status))
	e.uint8(r.Nonce)
	return e.finish(RentalAgreementLen), nil
}

func DecodeRental(data []byte) (*domain.RentalAgreement, error) {
	d, err := newDecoder(KindRentalAgreement, data)
	if err != nil {
		return nil, err
	}
	r := &domain.RentalAgreement{
		Renter:        d.identity(),
		ResourceOwner: d.identity(),
		ResourceMint:  d.identity(),
		EscrowAmount:  d.uint64(),
		StartTime:     d.int64(),
		Duration:      d.int64(),
		Status:        domain.RentalStatus(d.uint8()),
		Nonce:         d.uint8(),
	}
	if d.err != nil {
		return nil, d.err
	}
	if !r.Status.Valid() {
		return nil, fmt.Errorf("%w: status discriminant %d", domain.ErrCorruptRecord, r.Status)
	}
	return r, nil
}
