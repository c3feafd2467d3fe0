// Package authority derives key-less identities for records and holding
// accounts, and mints the capabilities that let the custody layer move funds
// out of a holding account without any private key.
package authority

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/blake2b"

	"rentby-escrow/internal/domain"
)

const (
	MaxSeeds   = 16
	MaxSeedLen = 32

	NamespaceRental   = "rental"
	NamespaceEscrow   = "escrow"
	NamespaceResource = "resource"

	derivationMarker = "ProgramDerivedAddress"
)

// ProgramID namespaces every identity derived by this deployment.
var ProgramID = domain.Identity{
	0x77, 0xb0, 0x42, 0x69, 0xa7, 0x67, 0xa9, 0x6c, 0xc8, 0x5c, 0xa8, 0xe4, 0x1d, 0xbd, 0x50, 0xc1,
	0x01, 0x3b, 0x74, 0x98, 0xfb, 0xad, 0x25, 0xbb, 0x73, 0x27, 0xdc, 0x07, 0xff, 0x70, 0xc3, 0x8f,
}

var (
	ErrMaxSeedLength = errors.New("derivation seed exceeds maximum length")
	ErrTooManySeeds  = errors.New("too many derivation seeds")
	ErrOnCurve       = errors.New("derived identity lies on the ed25519 curve")
	ErrNoValidNonce  = errors.New("no nonce yields a valid derived identity")
)

// CreateAddress hashes seeds, nonce and the program identity into a
// candidate identity. Candidates that are valid curve points are rejected,
// since a private key could exist for them.
func CreateAddress(seeds [][]byte, nonce uint8) (domain.Identity, error) {
	var id domain.Identity
	if len(seeds) > MaxSeeds {
		return id, ErrTooManySeeds
	}
	h, _ := blake2b.New256(nil)
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return id, ErrMaxSeedLength
		}
		h.Write(s)
	}
	h.Write([]byte{nonce})
	h.Write(ProgramID[:])
	h.Write([]byte(derivationMarker))
	copy(id[:], h.Sum(nil))
	if onCurve(id) {
		return domain.Identity{}, ErrOnCurve
	}
	return id, nil
}

// FindAddress searches nonces from 255 down to 0 and returns the first one
// producing a valid derived identity.
func FindAddress(seeds [][]byte) (domain.Identity, uint8, error) {
	for n := 255; n >= 0; n-- {
		id, err := CreateAddress(seeds, uint8(n))
		if errors.Is(err, ErrOnCurve) {
			continue
		} else if err != nil {
			return domain.Identity{}, 0, err
		}
		return id, uint8(n), nil
	}
	return domain.Identity{}, 0, ErrNoValidNonce
}

func onCurve(id domain.Identity) bool {
	_, err := new(edwards25519.Point).SetBytes(id[:])
	return err == nil
}

func RentalSeeds(renter, mint domain.Identity) [][]byte {
	return [][]byte{[]byte(NamespaceRental), renter.Bytes(), mint.Bytes()}
}

func EscrowSeeds(rental domain.Identity) [][]byte {
	return [][]byte{[]byte(NamespaceEscrow), rental.Bytes()}
}

func ResourceSeeds(mint domain.Identity) [][]byte {
	return [][]byte{[]byte(NamespaceResource), mint.Bytes()}
}

// RentalAddress is the record address of the rental between renter and mint.
func RentalAddress(renter, mint domain.Identity) (domain.Identity, uint8, error) {
	return FindAddress(RentalSeeds(renter, mint))
}

// EscrowAddress is both the holding account address and its authority.
func EscrowAddress(rental domain.Identity) (domain.Identity, uint8, error) {
	return FindAddress(EscrowSeeds(rental))
}

func ResourceAddress(mint domain.Identity) (domain.Identity, uint8, error) {
	return FindAddress(ResourceSeeds(mint))
}

// VerifyRentalNonce checks that the nonce persisted on a rental still derives
// the address the rental was loaded from.
func VerifyRentalNonce(addr domain.Identity, rental *domain.RentalAgreement) error {
	return verify(addr, RentalSeeds(rental.Renter, rental.ResourceMint), rental.Nonce)
}

func VerifyResourceNonce(addr domain.Identity, resource *domain.Resource) error {
	return verify(addr, ResourceSeeds(resource.Mint), resource.Nonce)
}

func verify(addr domain.Identity, seeds [][]byte, nonce uint8) error {
	id, err := CreateAddress(seeds, nonce)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidNonce, err)
	}
	if id != addr {
		return fmt.Errorf("%w: %s", domain.ErrInvalidNonce, addr)
	}
	return nil
}
