package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
)

// IdentityLen is the byte length of every account identity.
const IdentityLen = 32

// Identity is a 32-byte account address. Natural parties use their ed25519
// public key; records and holding accounts use derived identities.
type Identity [IdentityLen]byte

// ParseIdentity decodes a base58 identity string.
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	b, err := base58.Decode(s)
	if err != nil {
		return id, fmt.Errorf("%w %q: %v", ErrInvalidIdentity, s, err)
	}
	if len(b) != IdentityLen {
		return id, fmt.Errorf("%w %q: expected %d bytes, got %d", ErrInvalidIdentity, s, IdentityLen, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id Identity) String() string {
	return base58.Encode(id[:])
}

func (id Identity) IsZero() bool {
	return id == Identity{}
}

func (id Identity) Bytes() []byte {
	return id[:]
}

func (id Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *Identity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseIdentity(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
