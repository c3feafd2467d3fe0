package domain

const (
	MaxResourceTypeLen  = 50
	MaxResourceSpecsLen = 200
)

// Resource is a rentable asset and its accrued reputation. Reputation and
// TotalRentals are only ever changed by the reputation package.
type Resource struct {
	Owner        Identity `json:"owner"`
	Mint         Identity `json:"mint"`
	ResourceType string   `json:"resource_type"`
	Specs        string   `json:"specs"`
	HourlyRate   uint64   `json:"hourly_rate"`
	Reputation   int32    `json:"reputation"`
	TotalRentals uint32   `json:"total_rentals"`
	CreatedAt    int64    `json:"created_at"`
	Nonce        uint8    `json:"nonce"`
}

type ResourceView struct {
	Address Identity `json:"address"`
	Resource
}
