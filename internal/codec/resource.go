package codec

import (
	"rentby-escrow/internal/domain"
)

// EncodeResource lays out a resource in its 359-byte record form. The two
// strings are length-prefixed and the unused tail is zero.
func EncodeResource(r *domain.Resource) ([]byte, error) {
	e := newEncoder(KindResource)
	e.identity(r.Owner)
	e.identity(r.Mint)
	if err := e.string(r.ResourceType, domain.MaxResourceTypeLen); err != nil {
		return nil, err
	}
	if err := e.string(r.Specs, domain.MaxResourceSpecsLen); err != nil {
		return nil, err
	}
	e.uint64(r.HourlyRate)
	e.int32(r.Reputation)
	e.uint32(r.TotalRentals)
	e.int64(r.CreatedAt)
	e.uint8(r.Nonce)
	return e.finish(ResourceLen), nil
}

func DecodeResource(data []byte) (*domain.Resource, error) {
	d, err := newDecoder(KindResource, data)
	if err != nil {
		return nil, err
	}
	r := &domain.Resource{
		Owner:        d.identity(),
		Mint:         d.identity(),
		ResourceType: d.string(domain.MaxResourceTypeLen),
		Specs:        d.string(domain.MaxResourceSpecsLen),
		HourlyRate:   d.uint64(),
		Reputation:   d.int32(),
		TotalRentals: d.uint32(),
		CreatedAt:    d.int64(),
		Nonce:        d.uint8(),
	}
	if d.err != nil {
		return nil, d.err
	}
	return r, nil
}
