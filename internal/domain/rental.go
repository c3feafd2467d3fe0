package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// RentalStatus is stored as a single discriminant byte.
type RentalStatus uint8

const (
	RentalStatusActive RentalStatus = iota
	RentalStatusCompleted
	RentalStatusDisputed
	RentalStatusResolved
)

var rentalStatusNames = [...]string{"ACTIVE", "COMPLETED", "DISPUTED", "RESOLVED"}

func (s RentalStatus) String() string {
	if int(s) < len(rentalStatusNames) {
		return rentalStatusNames[s]
	}
	return fmt.Sprintf("RentalStatus(%d)", uint8(s))
}

func (s RentalStatus) Valid() bool {
	return s <= RentalStatusResolved
}

// Terminal reports whether no further operation is permitted.
func (s RentalStatus) Terminal() bool {
	return s == RentalStatusCompleted || s == RentalStatusResolved
}

func (s RentalStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RentalStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range rentalStatusNames {
		if n == name {
			*s = RentalStatus(i)
			return nil
		}
	}
	return fmt.Errorf("unknown rental status %q", name)
}

// RentalAgreement is the persisted escrow agreement between a renter and a
// resource owner. Parties, mint and EscrowAmount never change after creation.
type RentalAgreement struct {
	Renter        Identity     `json:"renter"`
	ResourceOwner Identity     `json:"resource_owner"`
	ResourceMint  Identity     `json:"resource_mint"`
	EscrowAmount  uint64       `json:"escrow_amount"`
	StartTime     int64        `json:"start_time"`
	Duration      int64        `json:"duration"` // seconds, advisory only
	Status        RentalStatus `json:"status"`
	Nonce         uint8        `json:"nonce"`
}

// IsParty reports whether id is the renter or the resource owner.
func (r *RentalAgreement) IsParty(id Identity) bool {
	return id == r.Renter || id == r.ResourceOwner
}

// EndTime is start plus the recorded duration, saturating at the int64
// bounds. Nothing enforces it.
func (r *RentalAgreement) EndTime() int64 {
	end := r.StartTime + r.Duration
	switch {
	case r.Duration > 0 && end < r.StartTime:
		return math.MaxInt64
	case r.Duration < 0 && end > r.StartTime:
		return math.MinInt64
	}
	return end
}

// RentalView pairs a decoded agreement with its address and holding account.
type RentalView struct {
	Address        Identity `json:"address"`
	HoldingAccount Identity `json:"holding_account"`
	RentalAgreement
}
