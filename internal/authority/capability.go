package authority

import (
	"fmt"

	"rentby-escrow/internal/domain"
)

// Capability authorizes outbound transfers from exactly one holding account.
// Its fields are unexported, so a valid Capability can only be minted here
// from the seeds and nonce that derive it.
type Capability struct {
	address domain.Identity
	seeds   [][]byte
	nonce   uint8
}

// sign mints a capability for the identity derived from seeds and nonce.
func sign(seeds [][]byte, nonce uint8) (Capability, error) {
	addr, err := CreateAddress(seeds, nonce)
	if err != nil {
		return Capability{}, fmt.Errorf("%w: %v", domain.ErrInvalidCapability, err)
	}
	cp := make([][]byte, len(seeds))
	for i, s := range seeds {
		cp[i] = append([]byte(nil), s...)
	}
	return Capability{address: addr, seeds: cp, nonce: nonce}, nil
}

// EscrowCapability re-derives the escrow authority of a rental record.
func EscrowCapability(rental domain.Identity) (Capability, error) {
	seeds := EscrowSeeds(rental)
	_, nonce, err := FindAddress(seeds)
	if err != nil {
		return Capability{}, fmt.Errorf("%w: %v", domain.ErrInvalidCapability, err)
	}
	return sign(seeds, nonce)
}

// Address is the identity this capability signs for.
func (c Capability) Address() domain.Identity {
	return c.address
}

func (c Capability) Nonce() uint8 {
	return c.nonce
}

// Verify re-derives the address from the capability's own seeds and nonce.
func (c Capability) Verify() error {
	if c.address.IsZero() {
		return domain.ErrInvalidCapability
	}
	addr, err := CreateAddress(c.seeds, c.nonce)
	if err != nil || addr != c.address {
		return domain.ErrInvalidCapability
	}
	return nil
}
