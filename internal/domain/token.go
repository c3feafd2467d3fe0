package domain

import "time"

// TokenAccount is a balance of one mint held by an account identity. Only
// Owner may authorize transfers out of it.
type TokenAccount struct {
	Address Identity `json:"address"`
	Mint    Identity `json:"mint"`
	Owner   Identity `json:"owner"`
	Amount  uint64   `json:"amount"`
}

// TokenTransfer is one journaled movement between two token accounts.
type TokenTransfer struct {
	ID        string    `json:"id"`
	From      Identity  `json:"from"`
	To        Identity  `json:"to"`
	Authority Identity  `json:"authority"`
	Amount    uint64    `json:"amount"`
	Memo      string    `json:"memo"`
	CreatedOn time.Time `json:"created_on"`
}

// Stats summarizes the record store.
type Stats struct {
	TotalResources    int32   `json:"total_resources"`
	TotalRentals      int32   `json:"total_rentals"`
	ActiveRentals     int32   `json:"active_rentals"`
	CompletedRentals  int32   `json:"completed_rentals"`
	DisputedRentals   int32   `json:"disputed_rentals"`
	ResolvedRentals   int32   `json:"resolved_rentals"`
	AverageReputation float64 `json:"average_reputation"`
}
